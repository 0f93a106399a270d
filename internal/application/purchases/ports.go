package purchases

import (
	"context"

	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de compras, auditoría de stock y productos. La compra, sus líneas y
// las reposiciones de stock se confirman o descartan juntas.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		adjRepo repository.StockAdjustmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}
