package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto identificado por código de barras único.
// CurrentStock es la única cifra de stock (global, no por tienda) y solo se
// modifica a través del mutador de stock; nunca directamente.
type Product struct {
	ID           string
	Barcode      string // único
	Name         string
	Description  string
	Category     string
	CostPrice    decimal.Decimal // precio de compra
	SellingPrice decimal.Decimal // precio de venta
	MRP          decimal.Decimal // precio máximo de venta (informativo)
	CurrentStock int             // nunca negativo
	MinimumStock int             // punto de reorden
	HSNCode      string          // clasificación fiscal GST
	GSTRate      decimal.Decimal // porcentaje, ej. 18 para 18%
	SupplierID   string
	IsActive     bool // desactivación es bandera, no borrado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Estados de stock derivados para el tablero de inventario.
const (
	StockStatusOK         = "ok"
	StockStatusLow        = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// StockStatus clasifica el nivel actual contra el punto de reorden.
func (p *Product) StockStatus() string {
	switch {
	case p.CurrentStock == 0:
		return StockStatusOutOfStock
	case p.CurrentStock <= p.MinimumStock:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}

// StockValue devuelve el valor del inventario al costo (CurrentStock * CostPrice).
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}

// ReorderQuantity sugiere cuánto pedir: hasta 3x el mínimo, nunca negativo.
func (p *Product) ReorderQuantity() int {
	qty := p.MinimumStock*3 - p.CurrentStock
	if qty < 0 {
		return 0
	}
	return qty
}
