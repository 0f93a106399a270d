package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/application/inventory"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate en el fake equivale a GetByID: no hay concurrencia en tests.
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, newStock int, updatedAt time.Time) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newStock
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) UpdateMinimumStock(productID string, minimumStock int, updatedAt time.Time) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.MinimumStock = minimumStock
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) Deactivate(id string, updatedAt time.Time) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if filter.LowStockOnly && p.StockStatus() == entity.StockStatusOK {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Categories() ([]string, error) { return nil, nil }

type fakeAdjustmentRepo struct {
	created []*entity.StockAdjustment
}

func (r *fakeAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	cp := *adj
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeAdjustmentRepo) List(filter repository.AdjustmentFilter) ([]*entity.StockAdjustment, int, error) {
	return r.created, len(r.created), nil
}

func (r *fakeAdjustmentRepo) LatestByProduct(productID string) (*entity.StockAdjustment, error) {
	for i := len(r.created) - 1; i >= 0; i-- {
		if r.created[i].ProductID == productID {
			return r.created[i], nil
		}
	}
	return nil, nil
}

// fakeTxRunner ejecuta el callback directamente con los fakes. No simula
// rollback: los tests de atomicidad verifican que no hubo escrituras.
type fakeTxRunner struct {
	adjRepo     *fakeAdjustmentRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.adjRepo, r.productRepo)
}

func productoDePrueba() *entity.Product {
	return &entity.Product{
		ID:           "prod-1",
		Barcode:      "8901234567890",
		Name:         "Arroz Premium 1kg",
		Category:     "Abarrotes",
		CostPrice:    decimal.NewFromInt(50),
		SellingPrice: decimal.NewFromInt(65),
		CurrentStock: 10,
		MinimumStock: 5,
		GSTRate:      decimal.NewFromInt(5),
		IsActive:     true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyStockChange
// ──────────────────────────────────────────────────────────────────────────────

// Una venta de 4 unidades sobre stock 10 deja 6 y registra la fila de auditoría
// con snapshot previo/nuevo y el impacto al costo.
func TestApplyStockChange_DescuentaYRegistraAuditoria(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba())
	adjRepo := &fakeAdjustmentRepo{}
	now := time.Now()

	adj, product, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
		ProductID:      "prod-1",
		UserID:         "user-1",
		AdjustmentType: entity.AdjustmentSale,
		QuantityChange: -4,
		ReferenceType:  entity.ReferenceSale,
		ReferenceID:    "sale-1",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, 10, adj.PreviousStock, "el snapshot previo debe ser el stock antes del ajuste")
	assert.Equal(t, 6, adj.NewStock, "10 - 4 = 6")
	assert.Equal(t, -4, adj.QuantityChange)
	assert.Equal(t, entity.ReferenceSale, adj.ReferenceType)
	assert.Equal(t, "sale-1", adj.ReferenceID)
	assert.True(t, adj.CostImpact.Equal(decimal.NewFromInt(-200)),
		"impacto al costo = -4 * 50 = -200, fue %s", adj.CostImpact)
	assert.Equal(t, 10, product.CurrentStock, "el producto devuelto conserva el stock previo")

	stored, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 6, stored.CurrentStock, "el stock persistido debe quedar en 6")
	require.Len(t, adjRepo.created, 1)
	assert.Equal(t, adj.NewStock, stored.CurrentStock,
		"NewStock de la última fila de auditoría debe coincidir con CurrentStock")
}

// Reposición: cantidad positiva suma stock y el impacto al costo es positivo.
func TestApplyStockChange_ReponeStock(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba())
	adjRepo := &fakeAdjustmentRepo{}

	adj, _, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
		ProductID:      "prod-1",
		UserID:         "user-1",
		AdjustmentType: entity.AdjustmentRestock,
		QuantityChange: 15,
		ReferenceType:  entity.ReferencePurchase,
		ReferenceID:    "purchase-1",
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 25, adj.NewStock, "10 + 15 = 25")
	assert.True(t, adj.CostImpact.Equal(decimal.NewFromInt(750)), "15 * 50 = 750")
}

// Stock insuficiente: no debe quedar ninguna escritura y el error debe
// nombrar el producto y el stock disponible.
func TestApplyStockChange_RechazaStockNegativo(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba())
	adjRepo := &fakeAdjustmentRepo{}

	_, _, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
		ProductID:      "prod-1",
		UserID:         "user-1",
		AdjustmentType: entity.AdjustmentSale,
		QuantityChange: -11,
		ReferenceType:  entity.ReferenceSale,
	}, time.Now())

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Arroz Premium 1kg", "el error debe nombrar el producto")
	assert.Contains(t, err.Error(), "disponible 10", "el error debe indicar el stock disponible")

	stored, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 10, stored.CurrentStock, "el stock no debe cambiar")
	assert.Empty(t, adjRepo.created, "no debe registrarse fila de auditoría")
}

// Vender exactamente el stock disponible es válido y deja el stock en cero.
func TestApplyStockChange_VenderTodoElStock(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba())
	adjRepo := &fakeAdjustmentRepo{}

	adj, _, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
		ProductID:      "prod-1",
		UserID:         "user-1",
		AdjustmentType: entity.AdjustmentSale,
		QuantityChange: -10,
		ReferenceType:  entity.ReferenceSale,
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, adj.NewStock)
}

func TestApplyStockChange_ProductoInexistente(t *testing.T) {
	productRepo := newFakeProductRepo()
	adjRepo := &fakeAdjustmentRepo{}

	_, _, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
		ProductID:      "no-existe",
		UserID:         "user-1",
		AdjustmentType: entity.AdjustmentDamage,
		QuantityChange: -1,
		ReferenceType:  entity.ReferenceManual,
	}, time.Now())

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyStockChange_CantidadCeroInvalida(t *testing.T) {
	productRepo := newFakeProductRepo(productoDePrueba())
	adjRepo := &fakeAdjustmentRepo{}

	_, _, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
		ProductID:      "prod-1",
		UserID:         "user-1",
		AdjustmentType: entity.AdjustmentCorrection,
		QuantityChange: 0,
		ReferenceType:  entity.ReferenceManual,
	}, time.Now())

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AdjustStock (caso de uso de ajuste manual)
// ──────────────────────────────────────────────────────────────────────────────

func buildInventoryUseCase(products ...*entity.Product) (*inventory.UseCase, *fakeProductRepo, *fakeAdjustmentRepo) {
	productRepo := newFakeProductRepo(products...)
	adjRepo := &fakeAdjustmentRepo{}
	runner := &fakeTxRunner{adjRepo: adjRepo, productRepo: productRepo}
	uc := inventory.NewUseCase(runner, productRepo, adjRepo, nil, nil)
	return uc, productRepo, adjRepo
}

// Un ajuste DAMAGE válido descuenta stock y queda con referencia MANUAL.
func TestAdjustStock_DanioDescuentaStock(t *testing.T) {
	uc, productRepo, adjRepo := buildInventoryUseCase(productoDePrueba())

	resp, err := uc.AdjustStock(context.Background(), "user-1", "prod-1", dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentDamage,
		QuantityChange: -3,
		Reason:         "caja dañada en bodega",
	})

	require.NoError(t, err)
	assert.Equal(t, 10, resp.PreviousStock)
	assert.Equal(t, 7, resp.NewStock)
	assert.Equal(t, "Arroz Premium 1kg", resp.ProductName)

	stored, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 7, stored.CurrentStock)
	require.Len(t, adjRepo.created, 1)
	assert.Equal(t, entity.ReferenceManual, adjRepo.created[0].ReferenceType)
	assert.Equal(t, "caja dañada en bodega", adjRepo.created[0].Reason)
}

// SALE está reservado para el flujo de ventas: rechazado como ajuste manual.
func TestAdjustStock_TipoSaleReservado(t *testing.T) {
	uc, _, adjRepo := buildInventoryUseCase(productoDePrueba())

	_, err := uc.AdjustStock(context.Background(), "user-1", "prod-1", dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentSale,
		QuantityChange: -1,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, adjRepo.created)
}

func TestAdjustStock_TipoDesconocido(t *testing.T) {
	uc, _, _ := buildInventoryUseCase(productoDePrueba())

	_, err := uc.AdjustStock(context.Background(), "user-1", "prod-1", dto.AdjustStockRequest{
		AdjustmentType: "REGALO",
		QuantityChange: 5,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateReorderPoint
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateReorderPoint_ActualizaMinimo(t *testing.T) {
	uc, productRepo, _ := buildInventoryUseCase(productoDePrueba())

	resp, err := uc.UpdateReorderPoint(context.Background(), "prod-1", 12)

	require.NoError(t, err)
	assert.Equal(t, 5, resp.OldMinimumStock)
	assert.Equal(t, 12, resp.NewMinimumStock)

	stored, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 12, stored.MinimumStock)
	assert.Equal(t, 10, stored.CurrentStock, "el punto de reorden no toca el stock")
}

func TestUpdateReorderPoint_MinimoNegativo(t *testing.T) {
	uc, _, _ := buildInventoryUseCase(productoDePrueba())

	_, err := uc.UpdateReorderPoint(context.Background(), "prod-1", -1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
