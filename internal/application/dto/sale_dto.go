package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea solicitada en POST /api/sales.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest body para crear una venta.
type CreateSaleRequest struct {
	CustomerID     string            `json:"customer_id,omitempty"`
	PaymentMethod  string            `json:"payment_method"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	Notes          string            `json:"notes,omitempty"`
	Items          []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta con snapshot del producto.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse venta completa.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	UserID         string             `json:"user_id"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentStatus  string             `json:"payment_status"`
	Notes          string             `json:"notes,omitempty"`
	SaleDate       time.Time          `json:"sale_date"`
	Items          []SaleItemResponse `json:"items"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
