package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

const (
	defaultTopN = 10
	maxTopN     = 100

	dateLayout = "2006-01-02"
)

var hundred = decimal.NewFromInt(100)

// UseCase reportes de ventas y rentabilidad sobre agregaciones de solo lectura.
type UseCase struct {
	analytics repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso de analítica.
func NewUseCase(analytics repository.AnalyticsRepository) *UseCase {
	return &UseCase{analytics: analytics}
}

// parsePeriod interpreta las fechas YYYY-MM-DD del query string. Sin inicio se
// asume el primer día del mes en curso; sin fin, hoy. El fin se extiende al
// último segundo del día para que el rango sea inclusivo.
func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now

	if startStr != "" {
		parsed, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		end = parsed.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return start, end, nil
}

// SalesTrends serie diaria de ingreso y transacciones, comparada contra el
// período anterior de la misma duración.
func (uc *UseCase) SalesTrends(startStr, endStr string) (*dto.SalesTrendsResponse, error) {
	start, end, err := parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}

	rows, err := uc.analytics.SalesByDay(start, end)
	if err != nil {
		return nil, err
	}
	daily := make([]dto.DailySalesDTO, 0, len(rows))
	current := decimal.Zero
	for _, r := range rows {
		current = current.Add(r.Revenue)
		daily = append(daily, dto.DailySalesDTO{
			Date:         r.Day.Format(dateLayout),
			Revenue:      r.Revenue,
			Transactions: r.Transactions,
		})
	}

	// Período anterior: misma duración, terminando justo antes del inicio.
	span := end.Sub(start)
	previous, _, err := uc.analytics.RevenueBetween(start.Add(-span), start)
	if err != nil {
		return nil, err
	}
	growth := decimal.Zero
	if previous.IsPositive() {
		growth = current.Sub(previous).Div(previous).Mul(hundred).Round(2)
	}

	return &dto.SalesTrendsResponse{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Daily:     daily,
		Comparison: dto.PeriodComparisonDTO{
			CurrentRevenue:  current,
			PreviousRevenue: previous,
			GrowthPercent:   growth,
		},
	}, nil
}

// ProfitAnalysis rentabilidad bruta del período: totales sobre todas las
// ventas y el detalle de los productos que más ingreso aportan.
func (uc *UseCase) ProfitAnalysis(startStr, endStr string) (*dto.ProfitAnalysisResponse, error) {
	start, end, err := parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}

	// Sin límite: los totales deben cubrir todos los productos vendidos.
	rows, err := uc.analytics.SalesByProduct(start, end, 0)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.Zero
	totalCost := decimal.Zero
	byProduct := make([]dto.ProductProfitDTO, 0, len(rows))
	for _, r := range rows {
		totalRevenue = totalRevenue.Add(r.Revenue)
		totalCost = totalCost.Add(r.Cost)
		if len(byProduct) >= defaultTopN {
			continue
		}
		profit := r.Revenue.Sub(r.Cost)
		byProduct = append(byProduct, dto.ProductProfitDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Category:     r.Category,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
			Cost:         r.Cost,
			GrossProfit:  profit,
			ProfitMargin: marginPercent(profit, r.Revenue),
		})
	}
	grossProfit := totalRevenue.Sub(totalCost)

	return &dto.ProfitAnalysisResponse{
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		TotalRevenue: totalRevenue,
		TotalCost:    totalCost,
		GrossProfit:  grossProfit,
		ProfitMargin: marginPercent(grossProfit, totalRevenue),
		ByProduct:    byProduct,
	}, nil
}

// TopProducts ranking de productos por ingreso. limit fuera de rango se
// normaliza a los topes del caso de uso.
func (uc *UseCase) TopProducts(startStr, endStr string, limit int) (*dto.TopProductsResponse, error) {
	start, end, err := parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopN
	}
	if limit > maxTopN {
		limit = maxTopN
	}

	rows, err := uc.analytics.SalesByProduct(start, end, limit)
	if err != nil {
		return nil, err
	}
	products := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		products = append(products, dto.TopProductDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Category:     r.Category,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
		})
	}
	return &dto.TopProductsResponse{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Products:  products,
	}, nil
}

// RevenueByCategory ingreso agrupado por categoría, mayor a menor.
func (uc *UseCase) RevenueByCategory(startStr, endStr string) (*dto.RevenueByCategoryResponse, error) {
	start, end, err := parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analytics.RevenueByCategory(start, end)
	if err != nil {
		return nil, err
	}
	categories := make([]dto.CategoryRevenueDTO, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, dto.CategoryRevenueDTO{
			Category:     r.Category,
			Revenue:      r.Revenue,
			QuantitySold: r.QuantitySold,
		})
	}
	return &dto.RevenueByCategoryResponse{
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		Categories: categories,
	}, nil
}

// CustomerInsights métricas de comportamiento: clientes nuevos vs recurrentes,
// ticket promedio y frecuencia de compra del período.
func (uc *UseCase) CustomerInsights(startStr, endStr string) (*dto.CustomerInsightsResponse, error) {
	start, end, err := parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}
	res, err := uc.analytics.CustomerInsights(start, end)
	if err != nil {
		return nil, err
	}

	returning := res.TotalCustomers - res.NewCustomers
	if returning < 0 {
		returning = 0
	}
	avgPurchase := decimal.Zero
	if res.TotalTransactions > 0 {
		avgPurchase = res.TotalRevenue.Div(decimal.NewFromInt(int64(res.TotalTransactions))).Round(2)
	}
	frequency := decimal.Zero
	if res.TotalCustomers > 0 {
		frequency = decimal.NewFromInt(int64(res.TotalTransactions)).
			Div(decimal.NewFromInt(int64(res.TotalCustomers))).Round(2)
	}

	return &dto.CustomerInsightsResponse{
		StartDate:          start.Format(dateLayout),
		EndDate:            end.Format(dateLayout),
		TotalCustomers:     res.TotalCustomers,
		NewCustomers:       res.NewCustomers,
		ReturningCustomers: returning,
		AvgPurchaseValue:   avgPurchase,
		PurchaseFrequency:  frequency,
	}, nil
}

// marginPercent margen como porcentaje del ingreso, redondeado a 2 decimales.
func marginPercent(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}
