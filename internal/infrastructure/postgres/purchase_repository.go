package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, purchase_order_number, supplier_id, total_amount,
	payment_status, purchase_date, notes, created_at`

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la cabecera de la compra. La UNIQUE de purchase_order_number
// reporta ErrDuplicate ante carrera del consecutivo.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, purchase_order_number, supplier_id, total_amount,
			payment_status, purchase_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.PurchaseOrderNumber, purchase.SupplierID, purchase.TotalAmount,
		purchase.PaymentStatus, purchase.PurchaseDate, purchase.Notes, purchase.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de compra (solo dentro de la tx de la compra).
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_cost, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseID, item.ProductID, item.Quantity, item.UnitCost, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene una compra con sus líneas.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	purchase, err := scanPurchase(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.loadItems(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// List devuelve compras recientes (con líneas) paginadas.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY purchase_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var compras []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		compras = append(compras, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range compras {
		if err := r.loadItems(p); err != nil {
			return nil, err
		}
	}
	return compras, nil
}

// CountByDay cuenta las compras de un día calendario (consecutivo de la orden).
func (r *PurchaseRepo) CountByDay(day time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM purchases WHERE purchase_date::date = $1::date`
	var n int
	if err := r.q.QueryRow(context.Background(), query, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("count purchases by day: %w", err)
	}
	return n, nil
}

func (r *PurchaseRepo) loadItems(purchase *entity.Purchase) error {
	query := `SELECT id, purchase_id, product_id, quantity, unit_cost, line_total
		FROM purchase_items WHERE purchase_id = $1`
	rows, err := r.q.Query(context.Background(), query, purchase.ID)
	if err != nil {
		return fmt.Errorf("load purchase items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.LineTotal); err != nil {
			return fmt.Errorf("scan purchase item: %w", err)
		}
		purchase.Items = append(purchase.Items, it)
	}
	return rows.Err()
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.PurchaseOrderNumber, &p.SupplierID, &p.TotalAmount,
		&p.PaymentStatus, &p.PurchaseDate, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
