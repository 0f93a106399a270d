package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, transfer_number, from_store_id, to_store_id, product_id, quantity,
	status, requested_by, approved_by, notes, created_at, updated_at, completed_at`

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de persistencia para traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create inserta el traslado. La UNIQUE de transfer_number reporta ErrDuplicate
// si el sufijo aleatorio chocó; el caso de uso reintenta con otro.
func (r *TransferRepo) Create(transfer *entity.InventoryTransfer) error {
	query := `
		INSERT INTO inventory_transfers (id, transfer_number, from_store_id, to_store_id, product_id,
			quantity, status, requested_by, approved_by, notes, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.TransferNumber, transfer.FromStoreID, transfer.ToStoreID,
		transfer.ProductID, transfer.Quantity, transfer.Status, transfer.RequestedBy,
		transfer.ApprovedBy, transfer.Notes, transfer.CreatedAt, transfer.UpdatedAt, transfer.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.InventoryTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM inventory_transfers WHERE id = $1`
	transfer, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return transfer, nil
}

// Update persiste una transición de estado.
func (r *TransferRepo) Update(transfer *entity.InventoryTransfer) error {
	query := `
		UPDATE inventory_transfers
		SET status = $2, approved_by = $3, notes = $4, updated_at = $5, completed_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, transfer.ApprovedBy, transfer.Notes,
		transfer.UpdatedAt, transfer.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve traslados con filtros opcionales, del más reciente al más antiguo.
func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.InventoryTransfer, error) {
	conditions := []string{"TRUE"}
	args := []any{}
	n := 0

	if filter.Status != "" {
		n++
		conditions = append(conditions, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
	}
	if filter.FromStoreID != "" {
		n++
		conditions = append(conditions, fmt.Sprintf("from_store_id = $%d", n))
		args = append(args, filter.FromStoreID)
	}
	if filter.ToStoreID != "" {
		n++
		conditions = append(conditions, fmt.Sprintf("to_store_id = $%d", n))
		args = append(args, filter.ToStoreID)
	}

	query := `SELECT ` + transferColumns + ` FROM inventory_transfers WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`
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
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var traslados []*entity.InventoryTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		traslados = append(traslados, t)
	}
	return traslados, rows.Err()
}

// Stats cuenta traslados por estado en una sola pasada.
func (r *TransferRepo) Stats() (*repository.TransferStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'COMPLETED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED')
		FROM inventory_transfers`
	var s repository.TransferStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.Total, &s.Pending, &s.Approved, &s.Completed, &s.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("transfer stats: %w", err)
	}
	return &s, nil
}

func scanTransfer(row pgx.Row) (*entity.InventoryTransfer, error) {
	var t entity.InventoryTransfer
	err := row.Scan(
		&t.ID, &t.TransferNumber, &t.FromStoreID, &t.ToStoreID, &t.ProductID, &t.Quantity,
		&t.Status, &t.RequestedBy, &t.ApprovedBy, &t.Notes, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
