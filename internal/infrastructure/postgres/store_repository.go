package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, name, code, address, city, country, phone, email, manager_id,
	is_active, created_at, updated_at`

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una tienda. Nombre y código llevan constraint única.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, code, address, city, country, phone, email, manager_id,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Code, store.Address, store.City, store.Country,
		store.Phone, store.Email, store.ManagerID, store.IsActive, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	store, err := scanStore(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return store, nil
}

// Update actualiza los datos de la tienda. El código no cambia.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, address = $3, city = $4, country = $5, phone = $6, email = $7,
			manager_id = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Address, store.City, store.Country,
		store.Phone, store.Email, store.ManagerID, store.IsActive, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve tiendas paginadas.
func (r *StoreRepo) List(limit, offset int) ([]*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var tiendas []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		tiendas = append(tiendas, s)
	}
	return tiendas, rows.Err()
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(
		&s.ID, &s.Name, &s.Code, &s.Address, &s.City, &s.Country,
		&s.Phone, &s.Email, &s.ManagerID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
