package repository

import (
	"time"

	"github.com/jhoicas/retailpos-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	CountByDay(day time.Time) (int, error)
}
