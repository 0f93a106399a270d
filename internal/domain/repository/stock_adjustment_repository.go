package repository

import (
	"time"

	"github.com/jhoicas/retailpos-api/internal/domain/entity"
)

// AdjustmentFilter filtros del historial de ajustes.
type AdjustmentFilter struct {
	ProductID      string
	AdjustmentType string
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// StockAdjustmentRepository define el puerto del libro de auditoría de stock.
// Solo inserta y lista: las filas son inmutables.
type StockAdjustmentRepository interface {
	Create(adj *entity.StockAdjustment) error
	List(filter AdjustmentFilter) ([]*entity.StockAdjustment, int, error)
	LatestByProduct(productID string) (*entity.StockAdjustment, error)
}
