package dto

import "time"

// CreateTransferRequest body para solicitar un traslado entre tiendas.
type CreateTransferRequest struct {
	FromStoreID string `json:"from_store_id"`
	ToStoreID   string `json:"to_store_id"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// RejectTransferRequest body opcional al rechazar (motivo).
type RejectTransferRequest struct {
	Notes string `json:"notes,omitempty"`
}

// TransferResponse traslado completo.
type TransferResponse struct {
	ID             string     `json:"id"`
	TransferNumber string     `json:"transfer_number"`
	FromStoreID    string     `json:"from_store_id"`
	ToStoreID      string     `json:"to_store_id"`
	ProductID      string     `json:"product_id"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
	RequestedBy    string     `json:"requested_by"`
	ApprovedBy     string     `json:"approved_by,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// TransferStatsResponse conteo de traslados por estado.
type TransferStatsResponse struct {
	TotalTransfers int `json:"total_transfers"`
	Pending        int `json:"pending"`
	Approved       int `json:"approved"`
	Completed      int `json:"completed"`
	Rejected       int `json:"rejected"`
}
