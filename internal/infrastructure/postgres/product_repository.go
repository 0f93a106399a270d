package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, name, description, category, cost_price, selling_price, mrp,
	current_stock, minimum_stock, hsn_code, gst_rate, supplier_id, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El stock inicial siempre es 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, barcode, name, description, category, cost_price, selling_price, mrp,
			current_stock, minimum_stock, hsn_code, gst_rate, supplier_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Description, product.Category,
		product.CostPrice, product.SellingPrice, product.MRP,
		product.CurrentStock, product.MinimumStock, product.HSNCode, product.GSTRate,
		product.SupplierID, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByBarcode obtiene un producto por código de barras (escaneo en caja).
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode), "get product by barcode")
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para el
// read-modify-write del mutador de stock. Solo tiene sentido dentro de una tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock product")
}

// Update actualiza los campos editables. No toca current_stock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, cost_price = $5, selling_price = $6,
			mrp = $7, hsn_code = $8, gst_rate = $9, supplier_id = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Category,
		product.CostPrice, product.SellingPrice, product.MRP,
		product.HSNCode, product.GSTRate, product.SupplierID, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe el nuevo stock. Única vía de escritura de current_stock;
// el caller debe tener la fila bloqueada (GetForUpdate).
func (r *ProductRepo) UpdateStock(productID string, newStock int, updatedAt time.Time) error {
	query := `UPDATE products SET current_stock = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, productID, newStock, updatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateMinimumStock escribe el punto de reorden.
func (r *ProductRepo) UpdateMinimumStock(productID string, minimumStock int, updatedAt time.Time) error {
	query := `UPDATE products SET minimum_stock = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, productID, minimumStock, updatedAt)
	if err != nil {
		return fmt.Errorf("update minimum stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate marca el producto como inactivo (soft delete).
func (r *ProductRepo) Deactivate(id string, updatedAt time.Time) error {
	query := `UPDATE products SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, updatedAt)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve productos activos con filtros opcionales y el total sin paginar.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	conditions := []string{"is_active = TRUE"}
	args := []any{}
	n := 0

	if filter.Category != "" {
		n++
		conditions = append(conditions, fmt.Sprintf("category = $%d", n))
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		n++
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR barcode ILIKE $%d OR description ILIKE $%d)", n, n, n))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.LowStockOnly {
		conditions = append(conditions, "current_stock <= minimum_stock")
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY name`
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
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// Categories devuelve las categorías distintas de productos activos.
func (r *ProductRepo) Categories() ([]string, error) {
	query := `SELECT DISTINCT category FROM products WHERE is_active = TRUE AND category <> '' ORDER BY category`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Description, &p.Category,
		&p.CostPrice, &p.SellingPrice, &p.MRP,
		&p.CurrentStock, &p.MinimumStock, &p.HSNCode, &p.GSTRate,
		&p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
