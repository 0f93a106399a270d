package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// StockChangeInput entrada del mutador de stock. QuantityChange lleva signo:
// negativo descuenta (venta, daño), positivo repone (compra, devolución).
type StockChangeInput struct {
	ProductID      string
	UserID         string
	AdjustmentType string
	QuantityChange int
	ReferenceType  string // SALE, PURCHASE, MANUAL
	ReferenceID    string
	Reason         string
}

// ApplyStockChange es la única vía de escritura de Product.CurrentStock.
// Bloquea la fila del producto (SELECT FOR UPDATE), verifica que el stock
// resultante no sea negativo, inserta la fila de auditoría y actualiza el
// stock, todo con los repositorios de la transacción del caller.
// Devuelve el ajuste creado y el producto bloqueado (con el stock previo).
func ApplyStockChange(
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
	input StockChangeInput,
	now time.Time,
) (*entity.StockAdjustment, *entity.Product, error) {
	if input.ProductID == "" || input.QuantityChange == 0 {
		return nil, nil, domain.ErrInvalidInput
	}

	// Bloquea la fila en products para evitar lost updates entre ventas concurrentes
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	previous := product.CurrentStock
	newStock := previous + input.QuantityChange
	if newStock < 0 {
		return nil, nil, fmt.Errorf("%w: producto %s, disponible %d, solicitado %d",
			domain.ErrInsufficientStock, product.Name, previous, -input.QuantityChange)
	}

	adj := &entity.StockAdjustment{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		UserID:         input.UserID,
		AdjustmentType: input.AdjustmentType,
		QuantityChange: input.QuantityChange,
		PreviousStock:  previous,
		NewStock:       newStock,
		ReferenceType:  input.ReferenceType,
		ReferenceID:    input.ReferenceID,
		Reason:         input.Reason,
		CostImpact:     product.CostPrice.Mul(decimal.NewFromInt(int64(input.QuantityChange))),
		CreatedAt:      now,
	}
	if err := adjRepo.Create(adj); err != nil {
		return nil, nil, err
	}
	if err := productRepo.UpdateStock(product.ID, newStock, now); err != nil {
		return nil, nil, err
	}
	return adj, product, nil
}
