package purchases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/application/purchases"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	products    map[string]*entity.Product
	suppliers   map[string]*entity.Supplier
	purchases   map[string]*entity.Purchase
	adjustments []*entity.StockAdjustment
	poNumbers   map[string]bool
}

func newMemDB() *memDB {
	return &memDB{
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		purchases: make(map[string]*entity.Purchase),
		poNumbers: make(map[string]bool),
	}
}

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) Create(*entity.Product) error { return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	v := *p
	return &v, nil
}

func (r *memProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r *memProductRepo) Update(*entity.Product) error { return nil }

func (r *memProductRepo) UpdateStock(productID string, newStock int, updatedAt time.Time) error {
	p, ok := r.db.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newStock
	p.UpdatedAt = updatedAt
	return nil
}

func (r *memProductRepo) UpdateMinimumStock(string, int, time.Time) error { return nil }
func (r *memProductRepo) Deactivate(string, time.Time) error             { return nil }
func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *memProductRepo) Categories() ([]string, error) { return nil, nil }

type memAdjustmentRepo struct{ db *memDB }

func (r *memAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	v := *adj
	r.db.adjustments = append(r.db.adjustments, &v)
	return nil
}

func (r *memAdjustmentRepo) List(repository.AdjustmentFilter) ([]*entity.StockAdjustment, int, error) {
	return r.db.adjustments, len(r.db.adjustments), nil
}

func (r *memAdjustmentRepo) LatestByProduct(string) (*entity.StockAdjustment, error) {
	return nil, nil
}

type memSupplierRepo struct{ db *memDB }

func (r *memSupplierRepo) Create(s *entity.Supplier) error {
	v := *s
	r.db.suppliers[s.ID] = &v
	return nil
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.db.suppliers[id]
	if !ok {
		return nil, nil
	}
	v := *s
	return &v, nil
}

func (r *memSupplierRepo) Update(*entity.Supplier) error              { return nil }
func (r *memSupplierRepo) List(int, int) ([]*entity.Supplier, error) { return nil, nil }

type memPurchaseRepo struct{ db *memDB }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	if r.db.poNumbers[p.PurchaseOrderNumber] {
		return domain.ErrDuplicate
	}
	v := *p
	r.db.purchases[p.ID] = &v
	r.db.poNumbers[p.PurchaseOrderNumber] = true
	return nil
}

func (r *memPurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	p, ok := r.db.purchases[item.PurchaseID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Items = append(p.Items, *item)
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.db.purchases[id]
	if !ok {
		return nil, nil
	}
	v := *p
	return &v, nil
}

func (r *memPurchaseRepo) List(int, int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.db.purchases {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPurchaseRepo) CountByDay(day time.Time) (int, error) {
	y, m, d := day.Date()
	n := 0
	for _, p := range r.db.purchases {
		py, pm, pd := p.PurchaseDate.Date()
		if py == y && pm == m && pd == d {
			n++
		}
	}
	return n, nil
}

type memTxRunner struct{ db *memDB }

func (r *memTxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&memPurchaseRepo{r.db}, &memAdjustmentRepo{r.db}, &memProductRepo{r.db})
}

func buildPurchasesUseCase(db *memDB) *purchases.UseCase {
	return purchases.NewUseCase(
		&memTxRunner{db},
		&memPurchaseRepo{db},
		&memProductRepo{db},
		&memSupplierRepo{db},
	)
}

func seedFixtures(db *memDB) {
	db.suppliers["supp-1"] = &entity.Supplier{ID: "supp-1", Name: "Distribuidora Norte"}
	db.products["prod-1"] = &entity.Product{
		ID:           "prod-1",
		Barcode:      "890prod-1",
		Name:         "Aceite 1L",
		CostPrice:    decimal.NewFromInt(80),
		SellingPrice: decimal.NewFromInt(95),
		CurrentStock: 5,
		IsActive:     true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

// Una compra de 20 unidades a costo 80 suma stock 5 → 25, registra auditoría
// RESTOCK con referencia PURCHASE y numera PO-YYYYMMDD-0001.
func TestCreatePurchase_ReponeStockYAudita(t *testing.T) {
	db := newMemDB()
	seedFixtures(db)
	uc := buildPurchasesUseCase(db)

	resp, err := uc.CreatePurchase(context.Background(), "manager-1", dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", Quantity: 20, UnitCost: decimal.NewFromInt(80)},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1600)), "total = 20 * 80")
	assert.Equal(t, entity.PurchasePending, resp.PaymentStatus, "sin estado explícito queda pending")
	esperado := fmt.Sprintf("PO-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, esperado, resp.PurchaseOrderNumber)

	assert.Equal(t, 25, db.products["prod-1"].CurrentStock, "5 + 20 = 25")
	require.Len(t, db.adjustments, 1)
	adj := db.adjustments[0]
	assert.Equal(t, entity.AdjustmentRestock, adj.AdjustmentType)
	assert.Equal(t, 20, adj.QuantityChange)
	assert.Equal(t, entity.ReferencePurchase, adj.ReferenceType)
	assert.Equal(t, resp.ID, adj.ReferenceID)
	assert.Equal(t, 5, adj.PreviousStock)
	assert.Equal(t, 25, adj.NewStock)
}

// Dos compras el mismo día reciben consecutivos 0001 y 0002.
func TestCreatePurchase_ConsecutivoPorDia(t *testing.T) {
	db := newMemDB()
	seedFixtures(db)
	uc := buildPurchasesUseCase(db)

	req := dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.PurchaseItemRequest{{ProductID: "prod-1", Quantity: 1, UnitCost: decimal.NewFromInt(80)}},
	}
	primera, err := uc.CreatePurchase(context.Background(), "manager-1", req)
	require.NoError(t, err)
	segunda, err := uc.CreatePurchase(context.Background(), "manager-1", req)
	require.NoError(t, err)

	dia := time.Now().Format("20060102")
	assert.Equal(t, "PO-"+dia+"-0001", primera.PurchaseOrderNumber)
	assert.Equal(t, "PO-"+dia+"-0002", segunda.PurchaseOrderNumber)
}

func TestCreatePurchase_ProveedorInexistente(t *testing.T) {
	db := newMemDB()
	seedFixtures(db)
	uc := buildPurchasesUseCase(db)

	_, err := uc.CreatePurchase(context.Background(), "manager-1", dto.CreatePurchaseRequest{
		SupplierID: "no-existe",
		Items:      []dto.PurchaseItemRequest{{ProductID: "prod-1", Quantity: 1, UnitCost: decimal.NewFromInt(80)}},
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, db.purchases)
	assert.Equal(t, 5, db.products["prod-1"].CurrentStock)
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	db := newMemDB()
	seedFixtures(db)
	uc := buildPurchasesUseCase(db)

	_, err := uc.CreatePurchase(context.Background(), "manager-1", dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "compra sin líneas")

	_, err = uc.CreatePurchase(context.Background(), "manager-1", dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.PurchaseItemRequest{{ProductID: "prod-1", Quantity: -2, UnitCost: decimal.NewFromInt(80)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = uc.CreatePurchase(context.Background(), "manager-1", dto.CreatePurchaseRequest{
		SupplierID:    "supp-1",
		PaymentStatus: "financiado",
		Items:         []dto.PurchaseItemRequest{{ProductID: "prod-1", Quantity: 1, UnitCost: decimal.NewFromInt(80)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado de pago desconocido")
}

// Las compras aceptan productos inactivos: reponer stock de un producto
// desactivado es válido (reactivarlo es decisión aparte).
func TestCreatePurchase_ProductoInactivoEsValido(t *testing.T) {
	db := newMemDB()
	seedFixtures(db)
	db.products["prod-1"].IsActive = false
	uc := buildPurchasesUseCase(db)

	_, err := uc.CreatePurchase(context.Background(), "manager-1", dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.PurchaseItemRequest{{ProductID: "prod-1", Quantity: 3, UnitCost: decimal.NewFromInt(80)}},
	})

	require.NoError(t, err)
	assert.Equal(t, 8, db.products["prod-1"].CurrentStock)
}
