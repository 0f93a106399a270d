package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación de solo lectura sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool (solo lectura).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// InventorySummary agrega el inventario activo: totales, conteos de stock bajo
// y agotado, valor al costo y desglose por categoría.
func (r *AnalyticsRepo) InventorySummary() (*repository.InventorySummary, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE current_stock > 0 AND current_stock <= minimum_stock),
			COUNT(*) FILTER (WHERE current_stock = 0),
			COALESCE(SUM(cost_price * current_stock), 0),
			COALESCE(SUM(current_stock), 0)
		FROM products WHERE is_active = TRUE`
	var summary repository.InventorySummary
	err := r.q.QueryRow(context.Background(), query).Scan(
		&summary.TotalProducts, &summary.LowStockCount, &summary.OutOfStockCount,
		&summary.TotalInventoryValue, &summary.TotalUnits,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}

	catQuery := `
		SELECT category, COUNT(*), COALESCE(SUM(current_stock), 0)
		FROM products WHERE is_active = TRUE
		GROUP BY category ORDER BY category`
	rows, err := r.q.Query(context.Background(), catQuery)
	if err != nil {
		return nil, fmt.Errorf("inventory summary by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c repository.CategorySummary
		if err := rows.Scan(&c.Category, &c.ProductCount, &c.TotalStock); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		summary.Categories = append(summary.Categories, c)
	}
	return &summary, rows.Err()
}

// SalesByDay agrega ingreso y número de transacciones por día calendario.
// Solo devuelve los días con ventas; el rango es inclusivo.
func (r *AnalyticsRepo) SalesByDay(start, end time.Time) ([]repository.DailySalesResult, error) {
	query := `
		SELECT sale_date::date, COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales
		WHERE sale_date >= $1 AND sale_date <= $2
		GROUP BY sale_date::date
		ORDER BY sale_date::date`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()

	var out []repository.DailySalesResult
	for rows.Next() {
		var d repository.DailySalesResult
		if err := rows.Scan(&d.Day, &d.Revenue, &d.Transactions); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RevenueBetween suma el ingreso y cuenta las transacciones del período.
func (r *AnalyticsRepo) RevenueBetween(start, end time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales WHERE sale_date >= $1 AND sale_date <= $2`
	var revenue decimal.Decimal
	var transactions int
	err := r.q.QueryRow(context.Background(), query, start, end).Scan(&revenue, &transactions)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("revenue between: %w", err)
	}
	return revenue, transactions, nil
}

// SalesByProduct agrega unidades, ingreso y costo de mercadería por producto,
// ordenado por ingreso descendente. limit <= 0 trae todos los productos con
// ventas (para los totales de rentabilidad).
func (r *AnalyticsRepo) SalesByProduct(start, end time.Time, limit int) ([]repository.ProductSalesResult, error) {
	query := `
		SELECT p.id, p.name, p.category,
			COALESCE(SUM(si.quantity), 0),
			COALESCE(SUM(si.line_total), 0),
			COALESCE(SUM(si.quantity * p.cost_price), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.sale_date >= $1 AND s.sale_date <= $2
		GROUP BY p.id, p.name, p.category
		ORDER BY SUM(si.line_total) DESC`
	args := []any{start, end}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by product: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductSalesResult
	for rows.Next() {
		var p repository.ProductSalesResult
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Category,
			&p.QuantitySold, &p.Revenue, &p.Cost); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RevenueByCategory agrega ingreso y unidades vendidas por categoría.
func (r *AnalyticsRepo) RevenueByCategory(start, end time.Time) ([]repository.CategoryRevenueResult, error) {
	query := `
		SELECT p.category, COALESCE(SUM(si.line_total), 0), COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.sale_date >= $1 AND s.sale_date <= $2
		GROUP BY p.category
		ORDER BY SUM(si.line_total) DESC`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("revenue by category: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryRevenueResult
	for rows.Next() {
		var c repository.CategoryRevenueResult
		if err := rows.Scan(&c.Category, &c.Revenue, &c.QuantitySold); err != nil {
			return nil, fmt.Errorf("scan category revenue: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CustomerInsights métricas de los clientes con ventas en el período. Las
// ventas de mostrador (sin cliente) cuentan para ingreso y transacciones pero
// no para los conteos de clientes.
func (r *AnalyticsRepo) CustomerInsights(start, end time.Time) (*repository.CustomerInsightsResult, error) {
	query := `
		SELECT
			COUNT(DISTINCT c.id),
			COUNT(DISTINCT c.id) FILTER (WHERE c.created_at >= $1 AND c.created_at <= $2),
			COALESCE(SUM(s.total_amount), 0),
			COUNT(*)
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.sale_date >= $1 AND s.sale_date <= $2`
	var res repository.CustomerInsightsResult
	err := r.q.QueryRow(context.Background(), query, start, end).Scan(
		&res.TotalCustomers, &res.NewCustomers, &res.TotalRevenue, &res.TotalTransactions,
	)
	if err != nil {
		return nil, fmt.Errorf("customer insights: %w", err)
	}
	return &res, nil
}
