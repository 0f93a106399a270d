package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentUPI   = "upi"
	PaymentMixed = "mixed"
)

// Estados de pago de una venta.
const (
	SaleCompleted = "completed"
	SalePending   = "pending"
	SaleRefunded  = "refunded"
)

// ValidPaymentMethod verifica el método de pago.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentMixed:
		return true
	}
	return false
}

// Sale es una transacción de venta (agregado): posee sus SaleItem en exclusiva,
// se crean y eliminan únicamente junto con la venta.
// Invariante: TotalAmount = Subtotal - DiscountAmount + TaxAmount.
type Sale struct {
	ID             string
	InvoiceNumber  string // único, secuencial por día
	UserID         string // cajero
	CustomerID     string // opcional
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string
	PaymentStatus  string // completed, pending, refunded
	Notes          string
	SaleDate       time.Time
	CreatedAt      time.Time
	Items          []SaleItem
}

// SaleItem es una línea de venta con snapshot del producto al momento de la
// venta: cambios posteriores al producto no alteran ventas históricas.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Barcode     string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	LineTotal   decimal.Decimal
}
