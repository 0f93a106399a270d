package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, phone, name, email, address, first_purchase_date, last_purchase_date,
	total_purchases, total_spent, created_at, updated_at`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente. El teléfono lleva constraint única.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, phone, name, email, address, first_purchase_date, last_purchase_date,
			total_purchases, total_spent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Phone, customer.Name, customer.Email, customer.Address,
		customer.FirstPurchaseDate, customer.LastPurchaseDate,
		customer.TotalPurchases, customer.TotalSpent, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPhone busca un cliente por teléfono (lookup en caja).
func (r *CustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, phone))
}

// Update actualiza datos de contacto. Los contadores solo los escribe RecordPurchase.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, email = $3, address = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Address, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve clientes paginados.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var clientes []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		clientes = append(clientes, c)
	}
	return clientes, rows.Err()
}

// RecordPurchase incrementa los contadores de fidelidad dentro de la tx de la
// venta. first_purchase_date se fija solo en la primera compra.
func (r *CustomerRepo) RecordPurchase(customerID string, amount decimal.Decimal, at time.Time) error {
	query := `
		UPDATE customers
		SET total_purchases = total_purchases + 1,
			total_spent = total_spent + $2,
			last_purchase_date = $3,
			first_purchase_date = CASE WHEN total_purchases = 0 THEN $3 ELSE first_purchase_date END,
			updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, customerID, amount, at)
	if err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) scanOne(row pgx.Row) (*entity.Customer, error) {
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Phone, &c.Name, &c.Email, &c.Address,
		&c.FirstPurchaseDate, &c.LastPurchaseDate,
		&c.TotalPurchases, &c.TotalSpent, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
