package sales

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

// Reintentos del insert de venta ante colisión del número de factura.
// Dos cajas que facturan en el mismo instante calculan el mismo consecutivo;
// la constraint UNIQUE detecta al perdedor y se reintenta con el conteo nuevo.
const maxInvoiceAttempts = 3

var cien = decimal.NewFromInt(100)

// UseCase crea y consulta ventas. CreateSale descuenta el inventario de cada
// línea en la misma transacción que inserta la factura.
type UseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// saleLine línea ya validada con el snapshot del producto y los montos calculados.
type saleLine struct {
	product   *entity.Product
	quantity  int
	unitPrice decimal.Decimal
	discount  decimal.Decimal
	taxAmount decimal.Decimal
	lineTotal decimal.Decimal
}

// CreateSale valida la solicitud, calcula los montos por línea (IGST sobre la
// base con descuento) y ejecuta la transacción: inserta la venta y sus líneas,
// descuenta stock por cada línea vía el mutador y actualiza los contadores del
// cliente. Si cualquier línea no tiene stock, nada queda escrito.
func (uc *UseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente (fuera de la tx, solo lectura)
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validar productos y calcular montos por línea
	lines := make([]saleLine, 0, len(in.Items))
	subtotal := decimal.Zero
	lineDiscounts := decimal.Zero
	taxTotal := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsNegative() || item.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, domain.ErrNotFound
		}
		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.SellingPrice
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		lineSubtotal := unitPrice.Mul(qty)
		if item.Discount.GreaterThan(lineSubtotal) {
			return nil, domain.ErrInvalidInput
		}
		// GST sobre la base ya descontada
		taxable := lineSubtotal.Sub(item.Discount)
		taxAmount := taxable.Mul(product.GSTRate).Div(cien)
		lineTotal := taxable.Add(taxAmount)

		subtotal = subtotal.Add(lineSubtotal)
		lineDiscounts = lineDiscounts.Add(item.Discount)
		taxTotal = taxTotal.Add(taxAmount)
		lines = append(lines, saleLine{
			product:   product,
			quantity:  item.Quantity,
			unitPrice: unitPrice,
			discount:  item.Discount,
			taxAmount: taxAmount,
			lineTotal: lineTotal,
		})
	}

	// El descuento de la venta se aplica después de impuestos (no reduce la base GST)
	discountTotal := lineDiscounts.Add(in.DiscountAmount)
	totalAmount := subtotal.Sub(discountTotal).Add(taxTotal)
	if totalAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	for attempt := 0; attempt < maxInvoiceAttempts; attempt++ {
		now := time.Now()
		candidate := &entity.Sale{
			ID:             uuid.New().String(),
			UserID:         userID,
			CustomerID:     in.CustomerID,
			Subtotal:       subtotal,
			DiscountAmount: discountTotal,
			TaxAmount:      taxTotal,
			TotalAmount:    totalAmount,
			PaymentMethod:  in.PaymentMethod,
			PaymentStatus:  entity.SaleCompleted,
			Notes:          in.Notes,
			SaleDate:       now,
			CreatedAt:      now,
		}

		err := uc.txRunner.RunSale(ctx, func(
			saleRepo repository.SaleRepository,
			adjRepo repository.StockAdjustmentRepository,
			productRepo repository.ProductRepository,
			customerRepo repository.CustomerRepository,
		) error {
			// Consecutivo del día dentro de la tx; la UNIQUE resuelve la carrera
			countToday, err := saleRepo.CountByDay(now)
			if err != nil {
				return err
			}
			candidate.InvoiceNumber = sequence.InvoiceNumber(now, countToday)
			if err := saleRepo.Create(candidate); err != nil {
				return err
			}

			for _, line := range lines {
				item := &entity.SaleItem{
					ID:          uuid.New().String(),
					SaleID:      candidate.ID,
					ProductID:   line.product.ID,
					ProductName: line.product.Name,
					Barcode:     line.product.Barcode,
					Quantity:    line.quantity,
					UnitPrice:   line.unitPrice,
					Discount:    line.discount,
					TaxRate:     line.product.GSTRate,
					TaxAmount:   line.taxAmount,
					LineTotal:   line.lineTotal,
				}
				if err := saleRepo.CreateItem(item); err != nil {
					return err
				}
				candidate.Items = append(candidate.Items, *item)

				// Descuento de stock: re-lee con FOR UPDATE, el chequeo de
				// insuficiencia usa el stock fresco, no el de la validación
				if _, _, err := inventory.ApplyStockChange(adjRepo, productRepo, inventory.StockChangeInput{
					ProductID:      line.product.ID,
					UserID:         userID,
					AdjustmentType: entity.AdjustmentSale,
					QuantityChange: -line.quantity,
					ReferenceType:  entity.ReferenceSale,
					ReferenceID:    candidate.ID,
				}, now); err != nil {
					return err
				}
			}

			if candidate.CustomerID != "" {
				if err := customerRepo.RecordPurchase(candidate.CustomerID, candidate.TotalAmount, now); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			sale = candidate
			break
		}
		if errors.Is(err, domain.ErrDuplicate) && attempt < maxInvoiceAttempts-1 {
			continue
		}
		return nil, err
	}

	return saleToResponse(sale), nil
}

// GetByID devuelve una venta con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return saleToResponse(sale), nil
}

// GetByInvoiceNumber busca por el número legible de factura.
func (uc *UseCase) GetByInvoiceNumber(invoiceNumber string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByInvoiceNumber(invoiceNumber)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return saleToResponse(sale), nil
}

// List devuelve ventas recientes paginadas.
func (uc *UseCase) List(page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	ventas, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(ventas))
	for _, s := range ventas {
		items = append(items, *saleToResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func saleToResponse(sale *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Barcode:     it.Barcode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			TaxRate:     it.TaxRate,
			TaxAmount:   it.TaxAmount,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.SaleResponse{
		ID:             sale.ID,
		InvoiceNumber:  sale.InvoiceNumber,
		UserID:         sale.UserID,
		CustomerID:     sale.CustomerID,
		Subtotal:       sale.Subtotal,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		TotalAmount:    sale.TotalAmount,
		PaymentMethod:  sale.PaymentMethod,
		PaymentStatus:  sale.PaymentStatus,
		Notes:          sale.Notes,
		SaleDate:       sale.SaleDate,
		Items:          items,
	}
}
