package sales

import (
	"context"

	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de ventas, auditoría de stock, productos y clientes. La venta, sus
// líneas, los descuentos de stock y los contadores del cliente se confirman
// o descartan juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		adjRepo repository.StockAdjustmentRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
