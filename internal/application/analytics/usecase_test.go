package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailpos-api/internal/application/analytics"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del puerto de analítica con datos enlatados
// ──────────────────────────────────────────────────────────────────────────────

type fakeAnalyticsRepo struct {
	daily      []repository.DailySalesResult
	prevRev    decimal.Decimal
	prevTx     int
	byProduct  []repository.ProductSalesResult
	byCategory []repository.CategoryRevenueResult
	insights   repository.CustomerInsightsResult

	// lastLimit registra el límite con el que se consultó el ranking.
	lastLimit int
}

func (f *fakeAnalyticsRepo) InventorySummary() (*repository.InventorySummary, error) {
	return &repository.InventorySummary{}, nil
}

func (f *fakeAnalyticsRepo) SalesByDay(start, end time.Time) ([]repository.DailySalesResult, error) {
	return f.daily, nil
}

func (f *fakeAnalyticsRepo) RevenueBetween(start, end time.Time) (decimal.Decimal, int, error) {
	return f.prevRev, f.prevTx, nil
}

func (f *fakeAnalyticsRepo) SalesByProduct(start, end time.Time, limit int) ([]repository.ProductSalesResult, error) {
	f.lastLimit = limit
	return f.byProduct, nil
}

func (f *fakeAnalyticsRepo) RevenueByCategory(start, end time.Time) ([]repository.CategoryRevenueResult, error) {
	return f.byCategory, nil
}

func (f *fakeAnalyticsRepo) CustomerInsights(start, end time.Time) (*repository.CustomerInsightsResult, error) {
	return &f.insights, nil
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SalesTrends
// ──────────────────────────────────────────────────────────────────────────────

// Período actual con 150 de ingreso contra 100 del anterior: crecimiento 50%.
func TestSalesTrends_CalculaCrecimientoEntrePeriodos(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		daily: []repository.DailySalesResult{
			{Day: day("2026-08-01"), Revenue: decimal.NewFromInt(90), Transactions: 3},
			{Day: day("2026-08-02"), Revenue: decimal.NewFromInt(60), Transactions: 2},
		},
		prevRev: decimal.NewFromInt(100),
	}
	uc := analytics.NewUseCase(repo)

	resp, err := uc.SalesTrends("2026-08-01", "2026-08-07")
	require.NoError(t, err)

	require.Len(t, resp.Daily, 2)
	assert.Equal(t, "2026-08-01", resp.Daily[0].Date)
	assert.Equal(t, 3, resp.Daily[0].Transactions)
	assert.True(t, resp.Comparison.CurrentRevenue.Equal(decimal.NewFromInt(150)),
		"el ingreso actual es la suma de la serie diaria")
	assert.True(t, resp.Comparison.GrowthPercent.Equal(decimal.NewFromInt(50)),
		"crecimiento (150-100)/100 = 50%%, fue %s", resp.Comparison.GrowthPercent)
}

// Sin ventas en el período anterior el crecimiento se reporta como cero, no
// como división por cero ni infinito.
func TestSalesTrends_SinPeriodoAnterior_CrecimientoCero(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		daily: []repository.DailySalesResult{
			{Day: day("2026-08-01"), Revenue: decimal.NewFromInt(80), Transactions: 1},
		},
		prevRev: decimal.Zero,
	}
	uc := analytics.NewUseCase(repo)

	resp, err := uc.SalesTrends("2026-08-01", "2026-08-07")
	require.NoError(t, err)
	assert.True(t, resp.Comparison.GrowthPercent.IsZero())
}

// Fechas malformadas o invertidas rechazan con ErrInvalidInput.
func TestSalesTrends_PeriodoInvalido(t *testing.T) {
	uc := analytics.NewUseCase(&fakeAnalyticsRepo{})

	_, err := uc.SalesTrends("2026-13-99", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fecha malformada")

	_, err = uc.SalesTrends("2026-08-10", "2026-08-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "inicio posterior al fin")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProfitAnalysis / TopProducts
// ──────────────────────────────────────────────────────────────────────────────

// Ingreso 200 con costo 120: utilidad bruta 80 y margen 40%, por producto y
// en los totales.
func TestProfitAnalysis_CalculaMargenes(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		byProduct: []repository.ProductSalesResult{
			{
				ProductID: "prod-1", ProductName: "Whisky 750ml", Category: "Licores",
				QuantitySold: 4,
				Revenue:      decimal.NewFromInt(200),
				Cost:         decimal.NewFromInt(120),
			},
		},
	}
	uc := analytics.NewUseCase(repo)

	resp, err := uc.ProfitAnalysis("2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, 0, repo.lastLimit, "los totales consultan sin límite")
	assert.True(t, resp.GrossProfit.Equal(decimal.NewFromInt(80)))
	assert.True(t, resp.ProfitMargin.Equal(decimal.NewFromInt(40)),
		"margen 80/200 = 40%%, fue %s", resp.ProfitMargin)

	require.Len(t, resp.ByProduct, 1)
	assert.True(t, resp.ByProduct[0].GrossProfit.Equal(decimal.NewFromInt(80)))
	assert.True(t, resp.ByProduct[0].ProfitMargin.Equal(decimal.NewFromInt(40)))
}

// Un producto regalado (ingreso cero) no divide por cero: margen cero.
func TestProfitAnalysis_IngresoCero_MargenCero(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		byProduct: []repository.ProductSalesResult{
			{ProductID: "prod-1", ProductName: "Muestra", Category: "Perfumes",
				QuantitySold: 1, Revenue: decimal.Zero, Cost: decimal.NewFromInt(10)},
		},
	}
	uc := analytics.NewUseCase(repo)

	resp, err := uc.ProfitAnalysis("2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.True(t, resp.ProfitMargin.IsZero())
	assert.True(t, resp.ByProduct[0].ProfitMargin.IsZero())
}

// El límite del ranking se normaliza: cero usa el default y los valores
// desmedidos se recortan al tope.
func TestTopProducts_NormalizaElLimite(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewUseCase(repo)

	_, err := uc.TopProducts("2026-08-01", "2026-08-31", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit, "límite por defecto")

	_, err = uc.TopProducts("2026-08-01", "2026-08-31", 5000)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit, "límite recortado al tope")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CustomerInsights
// ──────────────────────────────────────────────────────────────────────────────

// 10 clientes (3 nuevos) con 25 transacciones por 5000: recurrentes 7,
// ticket promedio 200 y frecuencia 2.5.
func TestCustomerInsights_CalculaPromedios(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		insights: repository.CustomerInsightsResult{
			TotalCustomers:    10,
			NewCustomers:      3,
			TotalRevenue:      decimal.NewFromInt(5000),
			TotalTransactions: 25,
		},
	}
	uc := analytics.NewUseCase(repo)

	resp, err := uc.CustomerInsights("2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, 7, resp.ReturningCustomers)
	assert.True(t, resp.AvgPurchaseValue.Equal(decimal.NewFromInt(200)),
		"ticket promedio 5000/25, fue %s", resp.AvgPurchaseValue)
	assert.True(t, resp.PurchaseFrequency.Equal(decimal.NewFromFloat(2.5)),
		"frecuencia 25/10, fue %s", resp.PurchaseFrequency)
}

// Período sin ventas: todos los promedios quedan en cero.
func TestCustomerInsights_SinVentas(t *testing.T) {
	uc := analytics.NewUseCase(&fakeAnalyticsRepo{})

	resp, err := uc.CustomerInsights("2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Zero(t, resp.TotalCustomers)
	assert.True(t, resp.AvgPurchaseValue.IsZero())
	assert.True(t, resp.PurchaseFrequency.IsZero())
}
