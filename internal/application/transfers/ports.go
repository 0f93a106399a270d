package transfers

import (
	"context"

	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// traslados y productos. Lo usa la creación para que el unique-insert del
// número de traslado y la validación de stock vean un estado consistente.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		productRepo repository.ProductRepository,
	) error) error
}
