package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste de stock.
const (
	AdjustmentRestock    = "RESTOCK"
	AdjustmentSale       = "SALE"
	AdjustmentDamage     = "DAMAGE"
	AdjustmentCorrection = "CORRECTION"
	AdjustmentReturn     = "RETURN"
	AdjustmentLoss       = "LOSS"
	AdjustmentTransfer   = "TRANSFER"
)

// Tipos de referencia: qué operación originó el ajuste.
const (
	ReferenceSale     = "SALE"
	ReferencePurchase = "PURCHASE"
	ReferenceManual   = "MANUAL"
)

// ValidAdjustmentType verifica que el tipo pertenezca al conjunto permitido
// para ajustes manuales (SALE se reserva para ventas).
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentRestock, AdjustmentDamage, AdjustmentCorrection,
		AdjustmentReturn, AdjustmentLoss, AdjustmentTransfer:
		return true
	}
	return false
}

// StockAdjustment es la fila inmutable del libro de auditoría de stock.
// Se crea una vez y nunca se modifica; NewStock de la fila más reciente de un
// producto debe coincidir siempre con Product.CurrentStock.
type StockAdjustment struct {
	ID             string
	ProductID      string
	UserID         string
	AdjustmentType string
	QuantityChange int // con signo: negativo venta/daño/pérdida
	PreviousStock  int
	NewStock       int
	ReferenceType  string // SALE, PURCHASE, MANUAL
	ReferenceID    string // id de la venta/compra que lo originó
	Reason         string
	CostImpact     decimal.Decimal // QuantityChange * CostPrice, solo informativo
	CreatedAt      time.Time
}
