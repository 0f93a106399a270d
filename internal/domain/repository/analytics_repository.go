package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary conteo y stock por categoría.
type CategorySummary struct {
	Category     string
	ProductCount int
	TotalStock   int
}

// InventorySummary estadísticas agregadas del inventario activo.
type InventorySummary struct {
	TotalProducts       int
	LowStockCount       int
	OutOfStockCount     int
	TotalInventoryValue decimal.Decimal
	TotalUnits          int
	Categories          []CategorySummary
}

// DailySalesResult fila de ventas agregadas por día calendario.
type DailySalesResult struct {
	Day          time.Time
	Revenue      decimal.Decimal
	Transactions int
}

// ProductSalesResult agregado de ventas por producto en un período. Cost es el
// costo de la mercadería vendida (cantidad por precio de costo vigente).
type ProductSalesResult struct {
	ProductID    string
	ProductName  string
	Category     string
	QuantitySold int
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
}

// CategoryRevenueResult ingreso agregado por categoría en un período.
type CategoryRevenueResult struct {
	Category     string
	Revenue      decimal.Decimal
	QuantitySold int
}

// CustomerInsightsResult métricas crudas de clientes con ventas en un período.
// NewCustomers cuenta los clientes dados de alta dentro del período.
type CustomerInsightsResult struct {
	TotalCustomers    int
	NewCustomers      int
	TotalRevenue      decimal.Decimal
	TotalTransactions int
}

// AnalyticsRepository define el puerto para agregaciones de solo lectura.
// Los períodos son [start, end] inclusivos; el llamador normaliza las fechas.
type AnalyticsRepository interface {
	InventorySummary() (*InventorySummary, error)
	SalesByDay(start, end time.Time) ([]DailySalesResult, error)
	RevenueBetween(start, end time.Time) (decimal.Decimal, int, error)
	SalesByProduct(start, end time.Time, limit int) ([]ProductSalesResult, error)
	RevenueByCategory(start, end time.Time) ([]CategoryRevenueResult, error)
	CustomerInsights(start, end time.Time) (*CustomerInsightsResult, error)
}
