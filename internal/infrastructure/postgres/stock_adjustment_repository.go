package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

const adjustmentColumns = `id, product_id, user_id, adjustment_type, quantity_change,
	previous_stock, new_stock, reference_type, reference_id, reason, cost_impact, created_at`

// StockAdjustmentRepo implementación del libro de auditoría de stock sobre PostgreSQL.
// Solo inserta y lee: las filas nunca se actualizan ni borran.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create inserta una fila de auditoría.
func (r *StockAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, product_id, user_id, adjustment_type, quantity_change,
			previous_stock, new_stock, reference_type, reference_id, reason, cost_impact, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		adj.ID, adj.ProductID, adj.UserID, adj.AdjustmentType, adj.QuantityChange,
		adj.PreviousStock, adj.NewStock, adj.ReferenceType, adj.ReferenceID,
		adj.Reason, adj.CostImpact, adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// List devuelve el historial con filtros opcionales, del más reciente al más antiguo.
func (r *StockAdjustmentRepo) List(filter repository.AdjustmentFilter) ([]*entity.StockAdjustment, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}
	n := 0

	if filter.ProductID != "" {
		n++
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", n))
		args = append(args, filter.ProductID)
	}
	if filter.AdjustmentType != "" {
		n++
		conditions = append(conditions, fmt.Sprintf("adjustment_type = $%d", n))
		args = append(args, filter.AdjustmentType)
	}
	if filter.From != nil {
		n++
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", n))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		n++
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", n))
		args = append(args, *filter.To)
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM stock_adjustments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock adjustments: %w", err)
	}

	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []*entity.StockAdjustment
	for rows.Next() {
		adj, err := scanAdjustment(rows)
		if err != nil {
			return nil, 0, err
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, total, rows.Err()
}

// LatestByProduct devuelve la fila más reciente de un producto (para verificar
// que new_stock coincide con products.current_stock).
func (r *StockAdjustmentRepo) LatestByProduct(productID string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + `
		FROM stock_adjustments WHERE product_id = $1
		ORDER BY created_at DESC LIMIT 1`
	adj, err := scanAdjustment(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest adjustment: %w", err)
	}
	return adj, nil
}

func scanAdjustment(row pgx.Row) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	err := row.Scan(
		&a.ID, &a.ProductID, &a.UserID, &a.AdjustmentType, &a.QuantityChange,
		&a.PreviousStock, &a.NewStock, &a.ReferenceType, &a.ReferenceID,
		&a.Reason, &a.CostImpact, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
