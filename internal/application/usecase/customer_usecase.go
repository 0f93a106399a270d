package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes. Los contadores de compras
// los escribe el flujo de ventas, no este caso de uso.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registra un cliente con teléfono único.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Phone:     in.Phone,
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// GetByPhone busca un cliente por teléfono (lookup en caja).
func (uc *CustomerUseCase) GetByPhone(phone string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza datos de contacto. El teléfono no cambia (es la identidad
// del cliente en caja) ni los contadores de fidelidad.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List devuelve clientes paginados.
func (uc *CustomerUseCase) List(page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	customers, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		Phone:            c.Phone,
		Name:             c.Name,
		Email:            c.Email,
		Address:          c.Address,
		TotalPurchases:   c.TotalPurchases,
		TotalSpent:       c.TotalSpent,
		LastPurchaseDate: c.LastPurchaseDate,
		CreatedAt:        c.CreatedAt,
	}
}
