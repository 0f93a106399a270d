package purchases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/application/inventory"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
	"github.com/jhoicas/retailpos-api/internal/domain/sequence"
)

// Reintentos del insert ante colisión del número de orden de compra.
const maxPOAttempts = 3

// UseCase crea y consulta compras a proveedor. CreatePurchase repone el
// inventario de cada línea en la misma transacción que inserta la orden.
type UseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

type purchaseLine struct {
	product   *entity.Product
	quantity  int
	unitCost  decimal.Decimal
	lineTotal decimal.Decimal
}

// CreatePurchase valida proveedor y productos, y ejecuta la transacción:
// inserta la orden y sus líneas y suma stock por cada línea vía el mutador
// (tipo RESTOCK, referencia PURCHASE). Las compras nunca fallan por stock:
// solo incrementan.
func (uc *UseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = entity.PurchasePending
	}
	switch paymentStatus {
	case entity.PurchasePending, entity.PurchasePartial, entity.PurchaseCompleted:
	default:
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]purchaseLine, 0, len(in.Items))
	totalAmount := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lineTotal := item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)
		lines = append(lines, purchaseLine{
			product:   product,
			quantity:  item.Quantity,
			unitCost:  item.UnitCost,
			lineTotal: lineTotal,
		})
	}

	var purchase *entity.Purchase
	for attempt := 0; attempt < maxPOAttempts; attempt++ {
		now := time.Now()
		candidate := &entity.Purchase{
			ID:            uuid.New().String(),
			SupplierID:    in.SupplierID,
			TotalAmount:   totalAmount,
			PaymentStatus: paymentStatus,
			PurchaseDate:  now,
			Notes:         in.Notes,
			CreatedAt:     now,
		}

		err := uc.txRunner.RunPurchase(ctx, func(
			purchaseRepo repository.PurchaseRepository,
			adjRepo repository.StockAdjustmentRepository,
			productRepo repository.ProductRepository,
		) error {
			countToday, err := purchaseRepo.CountByDay(now)
			if err != nil {
				return err
			}
			candidate.PurchaseOrderNumber = sequence.PurchaseOrderNumber(now, countToday)
			if err := purchaseRepo.Create(candidate); err != nil {
				return err
			}

			for _, line := range lines {
				item := &entity.PurchaseItem{
					ID:         uuid.New().String(),
					PurchaseID: candidate.ID,
					ProductID:  line.product.ID,
					Quantity:   line.quantity,
					UnitCost:   line.unitCost,
					LineTotal:  line.lineTotal,
				}
				if err := purchaseRepo.CreateItem(item); err != nil {
					return err
				}
				candidate.Items = append(candidate.Items, *item)

				if _, _, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
					ProductID:      line.product.ID,
					UserID:         userID,
					AdjustmentType: entity.AdjustmentRestock,
					QuantityChange: line.quantity,
					ReferenceType:  entity.ReferencePurchase,
					ReferenceID:    candidate.ID,
				}, now); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			purchase = candidate
			break
		}
		if errors.Is(err, domain.ErrDuplicate) && attempt < maxPOAttempts-1 {
			continue
		}
		return nil, err
	}

	return purchaseToResponse(purchase), nil
}

// GetByID devuelve una compra con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return purchaseToResponse(purchase), nil
}

// List devuelve compras recientes paginadas.
func (uc *UseCase) List(page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	compras, err := uc.purchaseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(compras))
	for _, p := range compras {
		items = append(items, *purchaseToResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func purchaseToResponse(purchase *entity.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(purchase.Items))
	for _, it := range purchase.Items {
		items = append(items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			LineTotal: it.LineTotal,
		})
	}
	return &dto.PurchaseResponse{
		ID:                  purchase.ID,
		PurchaseOrderNumber: purchase.PurchaseOrderNumber,
		SupplierID:          purchase.SupplierID,
		TotalAmount:         purchase.TotalAmount,
		PaymentStatus:       purchase.PaymentStatus,
		PurchaseDate:        purchase.PurchaseDate,
		Notes:               purchase.Notes,
		Items:               items,
	}
}
