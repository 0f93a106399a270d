package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente identificado por teléfono único.
// TotalPurchases/TotalSpent/LastPurchaseDate se actualizan en la misma
// transacción que registra la venta.
type Customer struct {
	ID                string
	Phone             string // único
	Name              string
	Email             string
	Address           string
	FirstPurchaseDate time.Time
	LastPurchaseDate  time.Time
	TotalPurchases    int
	TotalSpent        decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
