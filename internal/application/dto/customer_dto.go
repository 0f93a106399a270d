package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para registrar un cliente (teléfono único).
type CreateCustomerRequest struct {
	Phone   string `json:"phone"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateCustomerRequest campos opcionales a modificar.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CustomerResponse cliente con sus contadores de fidelidad.
type CustomerResponse struct {
	ID               string          `json:"id"`
	Phone            string          `json:"phone"`
	Name             string          `json:"name,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	TotalPurchases   int             `json:"total_purchases"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	LastPurchaseDate time.Time       `json:"last_purchase_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
