package sales_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/application/sales"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos en memoria con rollback por snapshot
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	products    map[string]*entity.Product
	adjustments []*entity.StockAdjustment
	sales       map[string]*entity.Sale
	customers   map[string]*entity.Customer
	invoiceNums map[string]bool // simula la constraint UNIQUE

	// dupFailures fuerza ErrDuplicate en los próximos N inserts de venta,
	// para ejercitar el reintento del consecutivo.
	dupFailures int

	// mu protege los mapas cuando hay cajas concurrentes. rowMu simula el
	// candado FOR UPDATE de PostgreSQL: una transacción de venta a la vez.
	mu    sync.Mutex
	rowMu sync.Mutex
}

func newMemDB() *memDB {
	return &memDB{
		products:    make(map[string]*entity.Product),
		sales:       make(map[string]*entity.Sale),
		customers:   make(map[string]*entity.Customer),
		invoiceNums: make(map[string]bool),
	}
}

func (db *memDB) clone() *memDB {
	db.mu.Lock()
	defer db.mu.Unlock()
	cp := newMemDB()
	for id, p := range db.products {
		v := *p
		cp.products[id] = &v
	}
	for id, s := range db.sales {
		v := *s
		v.Items = append([]entity.SaleItem(nil), s.Items...)
		cp.sales[id] = &v
	}
	for id, c := range db.customers {
		v := *c
		cp.customers[id] = &v
	}
	for _, a := range db.adjustments {
		v := *a
		cp.adjustments = append(cp.adjustments, &v)
	}
	for n := range db.invoiceNums {
		cp.invoiceNums[n] = true
	}
	cp.dupFailures = db.dupFailures
	return cp
}

func (db *memDB) restore(snapshot *memDB) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.products = snapshot.products
	db.adjustments = snapshot.adjustments
	db.sales = snapshot.sales
	db.customers = snapshot.customers
	db.invoiceNums = snapshot.invoiceNums
}

// ── Repos sobre memDB ────────────────────────────────────────────────────────

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) Create(p *entity.Product) error {
	v := *p
	r.db.products[p.ID] = &v
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	v := *p
	return &v, nil
}

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) { return nil, nil }

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v := *p
	r.db.products[p.ID] = &v
	return nil
}

func (r *memProductRepo) UpdateStock(productID string, newStock int, updatedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
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

type memSaleRepo struct{ db *memDB }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	if r.db.dupFailures > 0 {
		r.db.dupFailures--
		return domain.ErrDuplicate
	}
	if r.db.invoiceNums[sale.InvoiceNumber] {
		return domain.ErrDuplicate
	}
	v := *sale
	r.db.sales[sale.ID] = &v
	r.db.invoiceNums[sale.InvoiceNumber] = true
	return nil
}

func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	s, ok := r.db.sales[item.SaleID]
	if !ok {
		return domain.ErrNotFound
	}
	s.Items = append(s.Items, *item)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.db.sales[id]
	if !ok {
		return nil, nil
	}
	v := *s
	return &v, nil
}

func (r *memSaleRepo) GetByInvoiceNumber(num string) (*entity.Sale, error) {
	for _, s := range r.db.sales {
		if s.InvoiceNumber == num {
			v := *s
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.db.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSaleRepo) CountByDay(day time.Time) (int, error) {
	y, m, d := day.Date()
	n := 0
	for _, s := range r.db.sales {
		sy, sm, sd := s.SaleDate.Date()
		if sy == y && sm == m && sd == d {
			n++
		}
	}
	return n, nil
}

type memCustomerRepo struct{ db *memDB }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	v := *c
	r.db.customers[c.ID] = &v
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.db.customers[id]
	if !ok {
		return nil, nil
	}
	v := *c
	return &v, nil
}

func (r *memCustomerRepo) GetByPhone(string) (*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(c *entity.Customer) error             { return nil }
func (r *memCustomerRepo) List(int, int) ([]*entity.Customer, error)   { return nil, nil }

func (r *memCustomerRepo) RecordPurchase(customerID string, amount decimal.Decimal, at time.Time) error {
	c, ok := r.db.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalPurchases++
	c.TotalSpent = c.TotalSpent.Add(amount)
	c.LastPurchaseDate = at
	return nil
}

// memTxRunner simula Commit/Rollback: restaura el snapshot si fn retorna error.
// rowMu se sostiene durante todo el callback, igual que el candado de fila que
// SELECT FOR UPDATE mantiene hasta el commit.
type memTxRunner struct{ db *memDB }

func (r *memTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	r.db.rowMu.Lock()
	defer r.db.rowMu.Unlock()
	snapshot := r.db.clone()
	err := fn(&memSaleRepo{r.db}, &memAdjustmentRepo{r.db}, &memProductRepo{r.db}, &memCustomerRepo{r.db})
	if err != nil {
		r.db.restore(snapshot)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func buildSalesUseCase(db *memDB) *sales.UseCase {
	return sales.NewUseCase(
		&memTxRunner{db},
		&memSaleRepo{db},
		&memProductRepo{db},
		&memCustomerRepo{db},
	)
}

func seedProduct(db *memDB, id string, stock int, price, gstRate int64) *entity.Product {
	p := &entity.Product{
		ID:           id,
		Barcode:      "890" + id,
		Name:         "Producto " + id,
		Category:     "Abarrotes",
		CostPrice:    decimal.NewFromInt(price / 2),
		SellingPrice: decimal.NewFromInt(price),
		CurrentStock: stock,
		MinimumStock: 2,
		GSTRate:      decimal.NewFromInt(gstRate),
		IsActive:     true,
	}
	db.products[id] = p
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateSale
// ──────────────────────────────────────────────────────────────────────────────

// Venta de 4 unidades a 100 con GST 18%: subtotal 400, impuesto 72, total 472,
// stock 10 → 6, factura INV-YYYYMMDD-0001 y fila de auditoría SALE con la venta
// como referencia.
func TestCreateSale_EscenarioCompleto(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 100, 18)
	uc := buildSalesUseCase(db)

	resp, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: 4},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(400)), "subtotal = 4 * 100")
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromInt(72)), "impuesto = 400 * 18%% = 72, fue %s", resp.TaxAmount)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(472)), "total = 400 - 0 + 72")
	assert.Equal(t, entity.SaleCompleted, resp.PaymentStatus)

	esperado := fmt.Sprintf("INV-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, esperado, resp.InvoiceNumber)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Producto prod-1", resp.Items[0].ProductName, "la línea lleva snapshot del nombre")
	assert.True(t, resp.Items[0].LineTotal.Equal(decimal.NewFromInt(472)))

	assert.Equal(t, 6, db.products["prod-1"].CurrentStock, "el stock queda en 6")
	require.Len(t, db.adjustments, 1)
	adj := db.adjustments[0]
	assert.Equal(t, entity.AdjustmentSale, adj.AdjustmentType)
	assert.Equal(t, -4, adj.QuantityChange)
	assert.Equal(t, entity.ReferenceSale, adj.ReferenceType)
	assert.Equal(t, resp.ID, adj.ReferenceID, "la auditoría referencia la venta")
	assert.Equal(t, 10, adj.PreviousStock)
	assert.Equal(t, 6, adj.NewStock)
}

// El invariante de totales se mantiene con descuentos por línea y de la venta:
// TotalAmount = Subtotal - DiscountAmount + TaxAmount.
func TestCreateSale_InvarianteDeTotales(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 20, 100, 18)
	seedProduct(db, "prod-2", 20, 50, 5)
	uc := buildSalesUseCase(db)

	resp, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod:  entity.PaymentCard,
		DiscountAmount: decimal.NewFromInt(30),
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: 2, Discount: decimal.NewFromInt(20)},
			{ProductID: "prod-2", Quantity: 3},
		},
	})

	require.NoError(t, err)
	// prod-1: subtotal 200, base 180, impuesto 32.40
	// prod-2: subtotal 150, base 150, impuesto 7.50
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(350)), "subtotal 200+150")
	assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(50)), "descuento 20 por línea + 30 de la venta")
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromFloat(39.9)), "impuesto 32.40 + 7.50, fue %s", resp.TaxAmount)

	invariante := resp.Subtotal.Sub(resp.DiscountAmount).Add(resp.TaxAmount)
	assert.True(t, resp.TotalAmount.Equal(invariante),
		"TotalAmount (%s) debe ser Subtotal - DiscountAmount + TaxAmount (%s)", resp.TotalAmount, invariante)
}

// Si la segunda línea no tiene stock, la venta completa se descarta: ni venta,
// ni líneas, ni auditoría, ni el descuento de la primera línea.
func TestCreateSale_StockInsuficienteDeshaceTodo(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 100, 18)
	seedProduct(db, "prod-2", 1, 50, 5)
	uc := buildSalesUseCase(db)

	_, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: 4},
			{ProductID: "prod-2", Quantity: 5},
		},
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Producto prod-2")
	assert.Contains(t, err.Error(), "disponible 1")

	assert.Equal(t, 10, db.products["prod-1"].CurrentStock, "la primera línea también se deshace")
	assert.Equal(t, 1, db.products["prod-2"].CurrentStock)
	assert.Empty(t, db.sales, "no debe quedar venta registrada")
	assert.Empty(t, db.adjustments, "no debe quedar auditoría")
}

// Con cliente asociado, la misma transacción actualiza sus contadores.
func TestCreateSale_ActualizaContadoresDelCliente(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 100, 0)
	db.customers["cust-1"] = &entity.Customer{ID: "cust-1", Phone: "5551234"}
	uc := buildSalesUseCase(db)

	resp, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		CustomerID:    "cust-1",
		PaymentMethod: entity.PaymentUPI,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 2}},
	})

	require.NoError(t, err)
	cliente := db.customers["cust-1"]
	assert.Equal(t, 1, cliente.TotalPurchases)
	assert.True(t, cliente.TotalSpent.Equal(resp.TotalAmount))
	assert.False(t, cliente.LastPurchaseDate.IsZero())
}

// Dos ventas el mismo día reciben consecutivos 0001 y 0002.
func TestCreateSale_ConsecutivoPorDia(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 100, 0)
	uc := buildSalesUseCase(db)

	primera, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	segunda, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)

	dia := time.Now().Format("20060102")
	assert.Equal(t, "INV-"+dia+"-0001", primera.InvoiceNumber)
	assert.Equal(t, "INV-"+dia+"-0002", segunda.InvoiceNumber)
}

// Ante colisión del número (otra caja ganó el consecutivo), se reintenta la
// transacción completa y la venta termina registrada.
func TestCreateSale_ReintentaAnteColisionDeFactura(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 100, 0)
	db.dupFailures = 1
	uc := buildSalesUseCase(db)

	resp, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Len(t, db.sales, 1)
	assert.Equal(t, 8, db.products["prod-1"].CurrentStock, "el stock se descuenta una sola vez")
	assert.NotEmpty(t, resp.InvoiceNumber)
}

// Si la colisión persiste tras agotar los reintentos, se propaga ErrDuplicate.
func TestCreateSale_AgotaReintentos(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 100, 0)
	db.dupFailures = 10
	uc := buildSalesUseCase(db)

	_, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 2}},
	})

	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, db.sales)
	assert.Equal(t, 10, db.products["prod-1"].CurrentStock)
}

// Dos cajas venden el mismo producto al mismo tiempo con stock para una sola:
// exactamente una venta entra, la otra recibe ErrInsufficientStock y el stock
// final descuenta solo la cantidad de la ganadora. Nunca queda negativo.
func TestCreateSale_VentasConcurrentesDelMismoProducto(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 100, 0)
	uc := buildSalesUseCase(db)

	cantidades := []int{7, 5}
	errs := make([]error, len(cantidades))
	var wg sync.WaitGroup
	for i, qty := range cantidades {
		wg.Add(1)
		go func(i, qty int) {
			defer wg.Done()
			_, errs[i] = uc.CreateSale(context.Background(), fmt.Sprintf("cashier-%d", i+1), dto.CreateSaleRequest{
				PaymentMethod: entity.PaymentCash,
				Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: qty}},
			})
		}(i, qty)
	}
	wg.Wait()

	ganadas := 0
	qtyGanadora := 0
	for i, err := range errs {
		if err == nil {
			ganadas++
			qtyGanadora = cantidades[i]
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock,
				"la caja perdedora debe recibir stock insuficiente, fue: %v", err)
		}
	}
	require.Equal(t, 1, ganadas, "exactamente una de las dos ventas debe entrar")

	assert.Equal(t, 10-qtyGanadora, db.products["prod-1"].CurrentStock,
		"el stock final descuenta solo la venta ganadora")
	assert.GreaterOrEqual(t, db.products["prod-1"].CurrentStock, 0, "el stock nunca queda negativo")
	assert.Len(t, db.sales, 1, "solo la venta ganadora queda registrada")
	assert.Len(t, db.adjustments, 1, "solo la ganadora deja auditoría")
}

// Validaciones de entrada: sin líneas, método de pago desconocido, producto
// inactivo y línea con cantidad cero.
func TestCreateSale_Validaciones(t *testing.T) {
	db := newMemDB()
	activo := seedProduct(db, "prod-1", 10, 100, 18)
	inactivo := seedProduct(db, "prod-2", 10, 100, 18)
	inactivo.IsActive = false
	uc := buildSalesUseCase(db)

	_, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	_, err = uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: "cheque",
		Items:         []dto.SaleItemRequest{{ProductID: activo.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago desconocido")

	_, err = uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: inactivo.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inactivo no se vende")

	_, err = uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: activo.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

// Si no se envía precio unitario, la línea usa el precio de venta del producto.
func TestCreateSale_PrecioPorDefecto(t *testing.T) {
	db := newMemDB()
	seedProduct(db, "prod-1", 10, 65, 0)
	uc := buildSalesUseCase(db)

	resp, err := uc.CreateSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 3}},
	})

	require.NoError(t, err)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(65)))
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(195)))
}
