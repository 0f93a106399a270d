package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjust-stock/:product_id.
type AdjustStockRequest struct {
	AdjustmentType string `json:"adjustment_type"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason,omitempty"`
}

// AdjustStockResponse resultado de un ajuste manual.
type AdjustStockResponse struct {
	AdjustmentID  string `json:"adjustment_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
}

// AdjustmentResponse fila del historial de ajustes.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	AdjustmentType string          `json:"adjustment_type"`
	QuantityChange int             `json:"quantity_change"`
	PreviousStock  int             `json:"previous_stock"`
	NewStock       int             `json:"new_stock"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	CostImpact     decimal.Decimal `json:"cost_impact"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AdjustmentListResponse historial paginado de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"adjustments"`
	Page  PageResponse         `json:"page"`
}

// InventoryItemResponse fila del listado de inventario con estado de stock.
type InventoryItemResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	StockStatus  string          `json:"stock_status"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// InventoryListResponse listado de inventario.
type InventoryListResponse struct {
	Total int                     `json:"total"`
	Items []InventoryItemResponse `json:"items"`
}

// LowStockAlert alerta de stock bajo o agotado.
type LowStockAlert struct {
	ID              string `json:"id"`
	Barcode         string `json:"barcode"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	CurrentStock    int    `json:"current_stock"`
	MinimumStock    int    `json:"minimum_stock"`
	AlertLevel      string `json:"alert_level"` // critical | warning
	ReorderQuantity int    `json:"reorder_quantity"`
}

// LowStockAlertsResponse alertas agregadas.
type LowStockAlertsResponse struct {
	TotalAlerts   int             `json:"total_alerts"`
	CriticalCount int             `json:"critical_count"`
	WarningCount  int             `json:"warning_count"`
	Alerts        []LowStockAlert `json:"alerts"`
}

// CategorySummaryDTO conteo por categoría en el resumen de inventario.
type CategorySummaryDTO struct {
	Category     string `json:"category"`
	ProductCount int    `json:"product_count"`
	TotalStock   int    `json:"total_stock"`
}

// InventorySummaryResponse estadísticas agregadas del inventario.
type InventorySummaryResponse struct {
	TotalProducts       int                  `json:"total_products"`
	LowStockCount       int                  `json:"low_stock_count"`
	OutOfStockCount     int                  `json:"out_of_stock_count"`
	TotalInventoryValue decimal.Decimal      `json:"total_inventory_value"`
	TotalUnits          int                  `json:"total_units"`
	Categories          []CategorySummaryDTO `json:"categories"`
}

// UpdateReorderPointRequest nuevo punto de reorden para un producto.
type UpdateReorderPointRequest struct {
	MinimumStock int `json:"minimum_stock"`
}

// UpdateReorderPointResponse resultado de actualizar el punto de reorden.
type UpdateReorderPointResponse struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	OldMinimumStock int    `json:"old_minimum_stock"`
	NewMinimumStock int    `json:"new_minimum_stock"`
}
