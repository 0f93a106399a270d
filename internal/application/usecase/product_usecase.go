package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. CurrentStock se maneja
// vía el mutador de stock, nunca desde aquí.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con stock inicial cero y barcode único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Barcode == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() || in.GSTRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByBarcode(in.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Barcode:      in.Barcode,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		MRP:          in.MRP,
		CurrentStock: 0,
		MinimumStock: in.MinimumStock,
		HSNCode:      in.HSNCode,
		GSTRate:      in.GSTRate,
		SupplierID:   in.SupplierID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode busca por código de barras (escaneo en caja).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza campos del producto. No permite modificar stock ni barcode.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.MRP != nil {
		product.MRP = *in.MRP
	}
	if in.HSNCode != nil {
		product.HSNCode = *in.HSNCode
	}
	if in.GSTRate != nil {
		if in.GSTRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.GSTRate = *in.GSTRate
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo (soft delete): conserva
// historial de ventas y auditoría.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id, time.Now())
}

// List devuelve productos con filtros de categoría, búsqueda y stock bajo.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	products, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Categories devuelve las categorías distintas de productos activos.
func (uc *ProductUseCase) Categories() ([]string, error) {
	return uc.repo.Categories()
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		MRP:          p.MRP,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		HSNCode:      p.HSNCode,
		GSTRate:      p.GSTRate,
		SupplierID:   p.SupplierID,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
