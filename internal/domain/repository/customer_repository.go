package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailpos-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// RecordPurchase actualiza los contadores del cliente dentro de la misma
// transacción que registra la venta.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
	RecordPurchase(customerID string, amount decimal.Decimal, at time.Time) error
}
