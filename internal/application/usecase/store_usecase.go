package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create registra una tienda; nombre y código llevan constraint única en BD.
func (uc *StoreUseCase) Create(in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Address:   in.Address,
		City:      in.City,
		Country:   in.Country,
		Phone:     in.Phone,
		Email:     in.Email,
		ManagerID: in.ManagerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// Update actualiza los datos de la tienda. El código no cambia.
func (uc *StoreUseCase) Update(id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		store.Name = *in.Name
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	if in.City != nil {
		store.City = *in.City
	}
	if in.Country != nil {
		store.Country = *in.Country
	}
	if in.Phone != nil {
		store.Phone = *in.Phone
	}
	if in.Email != nil {
		store.Email = *in.Email
	}
	if in.ManagerID != nil {
		store.ManagerID = *in.ManagerID
	}
	if in.IsActive != nil {
		store.IsActive = *in.IsActive
	}
	store.UpdatedAt = time.Now()

	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List devuelve tiendas paginadas.
func (uc *StoreUseCase) List(page dto.PageRequest) (*dto.StoreListResponse, error) {
	page.DefaultPage()
	stores, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Code:      s.Code,
		Address:   s.Address,
		City:      s.City,
		Country:   s.Country,
		Phone:     s.Phone,
		Email:     s.Email,
		ManagerID: s.ManagerID,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}
