package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para crear un producto.
// CurrentStock inicia en 0; el stock entra después vía compras o RESTOCK.
type CreateProductRequest struct {
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	MRP          decimal.Decimal `json:"mrp,omitempty"`
	MinimumStock int             `json:"minimum_stock"`
	HSNCode      string          `json:"hsn_code,omitempty"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	SupplierID   string          `json:"supplier_id,omitempty"`
}

// UpdateProductRequest campos opcionales a modificar. No incluye stock:
// el stock solo cambia vía el mutador.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	MRP          *decimal.Decimal `json:"mrp,omitempty"`
	HSNCode      *string          `json:"hsn_code,omitempty"`
	GSTRate      *decimal.Decimal `json:"gst_rate,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// ProductResponse producto completo.
type ProductResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	MRP          decimal.Decimal `json:"mrp,omitempty"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	HSNCode      string          `json:"hsn_code,omitempty"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
