package repository

import (
	"time"

	"github.com/jhoicas/retailpos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// Los SaleItem solo se crean dentro de la transacción de la venta (agregado).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetByInvoiceNumber(invoiceNumber string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// CountByDay cuenta las ventas de un día calendario (para el consecutivo
	// de factura); debe ejecutarse dentro de la misma tx que el insert.
	CountByDay(day time.Time) (int, error)
}
