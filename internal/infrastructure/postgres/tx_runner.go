package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/retailpos-api/internal/application/inventory"
	"github.com/jhoicas/retailpos-api/internal/application/purchases"
	"github.com/jhoicas/retailpos-api/internal/application/sales"
	"github.com/jhoicas/retailpos-api/internal/application/transfers"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// El mismo runner sirve los cuatro contextos transaccionales.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ purchases.TxRunner = (*TxRunner)(nil)
var _ transfers.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del mutador de stock y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infraError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockAdjustmentRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return infraError("commit transaction", err)
	}
	return nil
}

// RunSale inicia una transacción con los repos de venta, stock y cliente (para CreateSale).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infraError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewSaleRepository(tx),
		NewStockAdjustmentRepository(tx),
		NewProductRepository(tx),
		NewCustomerRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return infraError("commit transaction", err)
	}
	return nil
}

// RunPurchase inicia una transacción con los repos de compra y stock (para CreatePurchase).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infraError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPurchaseRepository(tx),
		NewStockAdjustmentRepository(tx),
		NewProductRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return infraError("commit transaction", err)
	}
	return nil
}

// RunTransfer inicia una transacción con los repos de traslados (unique-insert del número TRF).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infraError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTransferRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return infraError("commit transaction", err)
	}
	return nil
}
