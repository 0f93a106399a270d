package entity

import (
	"time"

	"github.com/jhoicas/retailpos-api/internal/domain"
)

// Estados de un traslado entre tiendas.
// IN_TRANSIT y CANCELLED están reservados para extensión futura: ninguna
// transición actual los produce.
const (
	TransferPending   = "PENDING"
	TransferApproved  = "APPROVED"
	TransferInTransit = "IN_TRANSIT"
	TransferCompleted = "COMPLETED"
	TransferRejected  = "REJECTED"
	TransferCancelled = "CANCELLED"
)

// InventoryTransfer modela el traslado de una cantidad fija de un producto
// entre dos tiendas como flujo de trabajo: solicitud → aprobación →
// completado/rechazo. Las transiciones son eventos explícitos de la API.
type InventoryTransfer struct {
	ID             string
	TransferNumber string // único, TRF-YYYYMMDD-NNNN
	FromStoreID    string
	ToStoreID      string
	ProductID      string
	Quantity       int
	Status         string
	RequestedBy    string
	ApprovedBy     string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// Approve pasa el traslado de PENDING a APPROVED.
func (t *InventoryTransfer) Approve(approverID string, now time.Time) error {
	if t.Status != TransferPending {
		return domain.ErrInvalidState
	}
	t.Status = TransferApproved
	t.ApprovedBy = approverID
	t.UpdatedAt = now
	return nil
}

// Complete pasa el traslado de APPROVED a COMPLETED y fija CompletedAt.
// Limitación conocida: el stock es una cifra global por producto, no existe
// partición por tienda, así que completar un traslado no mueve stock.
func (t *InventoryTransfer) Complete(now time.Time) error {
	if t.Status != TransferApproved {
		return domain.ErrInvalidState
	}
	t.Status = TransferCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}

// Reject rechaza un traslado PENDING o APPROVED; la razón se anexa a Notes.
func (t *InventoryTransfer) Reject(reason string, now time.Time) error {
	if t.Status != TransferPending && t.Status != TransferApproved {
		return domain.ErrInvalidState
	}
	t.Status = TransferRejected
	if reason != "" {
		if t.Notes != "" {
			t.Notes += "\n"
		}
		t.Notes += "Motivo de rechazo: " + reason
	}
	t.UpdatedAt = now
	return nil
}
