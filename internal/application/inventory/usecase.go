package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// UseCase agrupa las operaciones de inventario: ajustes manuales, historial,
// listado con estado de stock, punto de reorden y reportes agregados.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	adjRepo     repository.StockAdjustmentRepository
	analytics   repository.AnalyticsRepository
	cache       Cache
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	adjRepo repository.StockAdjustmentRepository,
	analytics repository.AnalyticsRepository,
	cache Cache,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		adjRepo:     adjRepo,
		analytics:   analytics,
		cache:       cache,
	}
}

// AdjustStock aplica un ajuste manual de stock en una transacción.
// SALE no es un tipo manual válido: solo lo escribe el flujo de ventas.
func (uc *UseCase) AdjustStock(ctx context.Context, userID, productID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if !entity.ValidAdjustmentType(in.AdjustmentType) {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp *dto.AdjustStockResponse
	err := uc.txRunner.Run(ctx, func(
		adjRepo repository.StockAdjustmentRepository,
		productRepo repository.ProductRepository,
	) error {
		adj, product, err := ApplyStockChange(adjRepo, productRepo, StockChangeInput{
			ProductID:      productID,
			UserID:         userID,
			AdjustmentType: in.AdjustmentType,
			QuantityChange: in.QuantityChange,
			ReferenceType:  entity.ReferenceManual,
			Reason:         in.Reason,
		}, now)
		if err != nil {
			return err
		}
		resp = &dto.AdjustStockResponse{
			AdjustmentID:  adj.ID,
			ProductID:     product.ID,
			ProductName:   product.Name,
			PreviousStock: adj.PreviousStock,
			NewStock:      adj.NewStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateReports(ctx)
	return resp, nil
}

// ListAdjustments devuelve el historial de ajustes con filtros opcionales.
func (uc *UseCase) ListAdjustments(filter repository.AdjustmentFilter) (*dto.AdjustmentListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	adjustments, total, err := uc.adjRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		items = append(items, dto.AdjustmentResponse{
			ID:             adj.ID,
			ProductID:      adj.ProductID,
			AdjustmentType: adj.AdjustmentType,
			QuantityChange: adj.QuantityChange,
			PreviousStock:  adj.PreviousStock,
			NewStock:       adj.NewStock,
			ReferenceType:  adj.ReferenceType,
			ReferenceID:    adj.ReferenceID,
			Reason:         adj.Reason,
			CostImpact:     adj.CostImpact,
			CreatedAt:      adj.CreatedAt,
		})
	}
	return &dto.AdjustmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// ListInventory lista productos activos con su estado de stock derivado.
func (uc *UseCase) ListInventory(filter repository.ProductFilter) (*dto.InventoryListResponse, error) {
	products, total, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.InventoryItemResponse{
			ID:           p.ID,
			Barcode:      p.Barcode,
			Name:         p.Name,
			Category:     p.Category,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
			CostPrice:    p.CostPrice,
			SellingPrice: p.SellingPrice,
			StockStatus:  p.StockStatus(),
			StockValue:   p.StockValue(),
		})
	}
	return &dto.InventoryListResponse{Total: total, Items: items}, nil
}

// UpdateReorderPoint cambia el stock mínimo de un producto. No toca CurrentStock.
func (uc *UseCase) UpdateReorderPoint(ctx context.Context, productID string, minimumStock int) (*dto.UpdateReorderPointResponse, error) {
	if minimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.productRepo.UpdateMinimumStock(productID, minimumStock, time.Now()); err != nil {
		return nil, err
	}
	uc.invalidateReports(ctx)
	return &dto.UpdateReorderPointResponse{
		ProductID:       product.ID,
		ProductName:     product.Name,
		OldMinimumStock: product.MinimumStock,
		NewMinimumStock: minimumStock,
	}, nil
}
