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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, invoice_number, user_id, customer_id, subtotal, discount_amount,
	tax_amount, total_amount, payment_method, payment_status, notes, sale_date, created_at`

const saleItemColumns = `id, sale_id, product_id, product_name, barcode, quantity,
	unit_price, discount, tax_rate, tax_amount, line_total`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta. La UNIQUE de invoice_number reporta
// ErrDuplicate cuando otra caja ganó el consecutivo del día.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, invoice_number, user_id, customer_id, subtotal, discount_amount,
			tax_amount, total_amount, payment_method, payment_status, notes, sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.InvoiceNumber, sale.UserID, sale.CustomerID,
		sale.Subtotal, sale.DiscountAmount, sale.TaxAmount, sale.TotalAmount,
		sale.PaymentMethod, sale.PaymentStatus, sale.Notes, sale.SaleDate, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta (solo dentro de la tx de la venta).
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, barcode, quantity,
			unit_price, discount, tax_rate, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductName, item.Barcode, item.Quantity,
		item.UnitPrice, item.Discount, item.TaxRate, item.TaxAmount, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.getOne(query, id)
}

// GetByInvoiceNumber busca por el número legible de factura.
func (r *SaleRepo) GetByInvoiceNumber(invoiceNumber string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE invoice_number = $1`
	return r.getOne(query, invoiceNumber)
}

// List devuelve ventas recientes (con líneas) paginadas.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var ventas []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		ventas = append(ventas, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range ventas {
		if err := r.loadItems(s); err != nil {
			return nil, err
		}
	}
	return ventas, nil
}

// CountByDay cuenta las ventas de un día calendario. Se usa dentro de la tx
// que inserta la venta para calcular el consecutivo de factura.
func (r *SaleRepo) CountByDay(day time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM sales WHERE sale_date::date = $1::date`
	var n int
	if err := r.q.QueryRow(context.Background(), query, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales by day: %w", err)
	}
	return n, nil
}

func (r *SaleRepo) getOne(query string, arg any) (*entity.Sale, error) {
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *SaleRepo) loadItems(sale *entity.Sale) error {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, sale.ID)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Barcode, &it.Quantity,
			&it.UnitPrice, &it.Discount, &it.TaxRate, &it.TaxAmount, &it.LineTotal,
		); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, it)
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.InvoiceNumber, &s.UserID, &s.CustomerID,
		&s.Subtotal, &s.DiscountAmount, &s.TaxAmount, &s.TotalAmount,
		&s.PaymentMethod, &s.PaymentStatus, &s.Notes, &s.SaleDate, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
