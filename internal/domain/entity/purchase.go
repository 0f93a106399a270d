package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una compra a proveedor.
const (
	PurchasePending   = "pending"
	PurchasePartial   = "partial"
	PurchaseCompleted = "completed"
)

// Purchase es una compra a proveedor (agregado): posee sus PurchaseItem en
// exclusiva. Siempre incrementa stock; no existe chequeo de insuficiencia.
type Purchase struct {
	ID                  string
	PurchaseOrderNumber string // único, secuencial por día
	SupplierID          string
	TotalAmount         decimal.Decimal
	PaymentStatus       string
	PurchaseDate        time.Time
	Notes               string
	CreatedAt           time.Time
	Items               []PurchaseItem
}

// PurchaseItem es una línea de compra. LineTotal = UnitCost * Quantity.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
	LineTotal  decimal.Decimal
}
