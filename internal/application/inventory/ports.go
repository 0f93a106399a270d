package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el mutador de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		adjRepo repository.StockAdjustmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Cache puerto de caché de lectura para resúmenes y alertas de inventario.
// ok=false en Get significa cache miss; un fallo del backend no debe tumbar la consulta.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
