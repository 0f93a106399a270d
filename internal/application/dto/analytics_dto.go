package dto

import "github.com/shopspring/decimal"

// DailySalesDTO ventas de un día calendario.
type DailySalesDTO struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

// PeriodComparisonDTO comparación contra el período anterior de igual duración.
type PeriodComparisonDTO struct {
	CurrentRevenue  decimal.Decimal `json:"current_revenue"`
	PreviousRevenue decimal.Decimal `json:"previous_revenue"`
	GrowthPercent   decimal.Decimal `json:"growth_percent"`
}

// SalesTrendsResponse serie diaria de ventas con comparación de períodos.
type SalesTrendsResponse struct {
	StartDate  string              `json:"start_date"`
	EndDate    string              `json:"end_date"`
	Daily      []DailySalesDTO     `json:"daily"`
	Comparison PeriodComparisonDTO `json:"comparison"`
}

// ProductProfitDTO rentabilidad de un producto en el período.
type ProductProfitDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // porcentaje sobre ingreso
}

// ProfitAnalysisResponse totales de rentabilidad y los productos que más aportan.
type ProfitAnalysisResponse struct {
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
	TotalCost    decimal.Decimal    `json:"total_cost"`
	GrossProfit  decimal.Decimal    `json:"gross_profit"`
	ProfitMargin decimal.Decimal    `json:"profit_margin"`
	ByProduct    []ProductProfitDTO `json:"by_product"`
}

// TopProductDTO producto del ranking por ingreso.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopProductsResponse ranking de productos más vendidos por ingreso.
type TopProductsResponse struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Products  []TopProductDTO `json:"products"`
}

// CategoryRevenueDTO ingreso de una categoría en el período.
type CategoryRevenueDTO struct {
	Category     string          `json:"category"`
	Revenue      decimal.Decimal `json:"revenue"`
	QuantitySold int             `json:"quantity_sold"`
}

// RevenueByCategoryResponse ingreso agrupado por categoría.
type RevenueByCategoryResponse struct {
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	Categories []CategoryRevenueDTO `json:"categories"`
}

// CustomerInsightsResponse métricas de comportamiento de clientes.
type CustomerInsightsResponse struct {
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	TotalCustomers     int             `json:"total_customers"`
	NewCustomers       int             `json:"new_customers"`
	ReturningCustomers int             `json:"returning_customers"`
	AvgPurchaseValue   decimal.Decimal `json:"avg_purchase_value"`
	PurchaseFrequency  decimal.Decimal `json:"purchase_frequency"`
}
