package repository

import "github.com/jhoicas/retailpos-api/internal/domain/entity"

// TransferFilter filtros de listado de traslados.
type TransferFilter struct {
	Status      string
	FromStoreID string
	ToStoreID   string
	Limit       int
	Offset      int
}

// TransferStats conteo de traslados por estado.
type TransferStats struct {
	Total     int
	Pending   int
	Approved  int
	Completed int
	Rejected  int
}

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	Create(transfer *entity.InventoryTransfer) error
	GetByID(id string) (*entity.InventoryTransfer, error)
	Update(transfer *entity.InventoryTransfer) error
	List(filter TransferFilter) ([]*entity.InventoryTransfer, error)
	Stats() (*TransferStats, error)
}
