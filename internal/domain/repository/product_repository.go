package repository

import (
	"time"

	"github.com/jhoicas/retailpos-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos/inventario.
type ProductFilter struct {
	Category     string
	Search       string // busca en nombre, barcode y descripción
	LowStockOnly bool
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para que el mutador de
// stock haga read-modify-write atómico; UpdateStock es su única vía de
// escritura de CurrentStock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, newStock int, updatedAt time.Time) error
	UpdateMinimumStock(productID string, minimumStock int, updatedAt time.Time) error
	Deactivate(id string, updatedAt time.Time) error
	List(filter ProductFilter) ([]*entity.Product, int, error)
	Categories() ([]string, error)
}
