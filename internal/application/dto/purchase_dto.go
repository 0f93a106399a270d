package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea solicitada en POST /api/purchases.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest body para registrar una compra.
type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id"`
	PaymentStatus string                `json:"payment_status,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []PurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PurchaseResponse compra completa.
type PurchaseResponse struct {
	ID                  string                 `json:"id"`
	PurchaseOrderNumber string                 `json:"purchase_order_number"`
	SupplierID          string                 `json:"supplier_id"`
	TotalAmount         decimal.Decimal        `json:"total_amount"`
	PaymentStatus       string                 `json:"payment_status"`
	PurchaseDate        time.Time              `json:"purchase_date"`
	Notes               string                 `json:"notes,omitempty"`
	Items               []PurchaseItemResponse `json:"items"`
}

// PurchaseListResponse listado paginado de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
