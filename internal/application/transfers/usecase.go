package transfers

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
	"github.com/jhoicas/retailpos-api/internal/domain/sequence"
)

// Reintentos del insert ante colisión del sufijo aleatorio del número TRF.
const maxTransferAttempts = 3

// UseCase gestiona el flujo de traslados entre tiendas: solicitud,
// aprobación, completado y rechazo. Las transiciones viven en la entidad;
// aquí se valida entrada, rol y persistencia.
type UseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
}

// NewUseCase construye el caso de uso de traslados.
func NewUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
	}
}

// Create registra una solicitud de traslado en estado PENDING.
// Valida que las tiendas sean distintas y existan, que el producto exista y
// que el stock global alcance la cantidad pedida. El chequeo de stock es
// informativo: el stock no se reserva ni se mueve al completar.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromStoreID == "" || in.ToStoreID == "" || in.FromStoreID == in.ToStoreID {
		return nil, domain.ErrInvalidInput
	}

	from, err := uc.storeRepo.GetByID(in.FromStoreID)
	if err != nil {
		return nil, err
	}
	to, err := uc.storeRepo.GetByID(in.ToStoreID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.ErrNotFound
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CurrentStock < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	var transfer *entity.InventoryTransfer
	for attempt := 0; attempt < maxTransferAttempts; attempt++ {
		now := time.Now()
		candidate := &entity.InventoryTransfer{
			ID:             uuid.New().String(),
			TransferNumber: sequence.TransferNumber(now, rand.Intn(10000)),
			FromStoreID:    in.FromStoreID,
			ToStoreID:      in.ToStoreID,
			ProductID:      in.ProductID,
			Quantity:       in.Quantity,
			Status:         entity.TransferPending,
			RequestedBy:    userID,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		err := uc.txRunner.RunTransfer(ctx, func(
			transferRepo repository.TransferRepository,
			_ repository.ProductRepository,
		) error {
			return transferRepo.Create(candidate)
		})
		if err == nil {
			transfer = candidate
			break
		}
		// Sufijo aleatorio chocó con un traslado existente: reintentar con otro
		if errors.Is(err, domain.ErrDuplicate) && attempt < maxTransferAttempts-1 {
			continue
		}
		return nil, err
	}

	return transferToResponse(transfer), nil
}

// Approve pasa un traslado PENDING a APPROVED. Solo admin o manager.
func (uc *UseCase) Approve(ctx context.Context, approverID, role, transferID string) (*dto.TransferResponse, error) {
	if !entity.RoleAllowed(role, entity.RoleAdmin, entity.RoleManager) {
		return nil, domain.ErrUnauthorized
	}
	transfer, err := uc.getTransfer(transferID)
	if err != nil {
		return nil, err
	}
	if err := transfer.Approve(approverID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.transferRepo.Update(transfer); err != nil {
		return nil, err
	}
	return transferToResponse(transfer), nil
}

// Complete pasa un traslado APPROVED a COMPLETED. Solo admin o manager.
// No mueve stock: el stock es global por producto (ver entidad).
func (uc *UseCase) Complete(ctx context.Context, userID, role, transferID string) (*dto.TransferResponse, error) {
	if !entity.RoleAllowed(role, entity.RoleAdmin, entity.RoleManager) {
		return nil, domain.ErrUnauthorized
	}
	transfer, err := uc.getTransfer(transferID)
	if err != nil {
		return nil, err
	}
	if err := transfer.Complete(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.transferRepo.Update(transfer); err != nil {
		return nil, err
	}
	return transferToResponse(transfer), nil
}

// Reject rechaza un traslado PENDING o APPROVED con motivo opcional.
// Solo admin o manager.
func (uc *UseCase) Reject(ctx context.Context, userID, role, transferID string, in dto.RejectTransferRequest) (*dto.TransferResponse, error) {
	if !entity.RoleAllowed(role, entity.RoleAdmin, entity.RoleManager) {
		return nil, domain.ErrUnauthorized
	}
	transfer, err := uc.getTransfer(transferID)
	if err != nil {
		return nil, err
	}
	if err := transfer.Reject(in.Notes, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.transferRepo.Update(transfer); err != nil {
		return nil, err
	}
	return transferToResponse(transfer), nil
}

// GetByID devuelve un traslado.
func (uc *UseCase) GetByID(id string) (*dto.TransferResponse, error) {
	transfer, err := uc.getTransfer(id)
	if err != nil {
		return nil, err
	}
	return transferToResponse(transfer), nil
}

// List devuelve traslados con filtros opcionales de estado y tiendas.
func (uc *UseCase) List(filter repository.TransferFilter) ([]dto.TransferResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	traslados, err := uc.transferRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(traslados))
	for _, tr := range traslados {
		out = append(out, *transferToResponse(tr))
	}
	return out, nil
}

// Stats devuelve el conteo de traslados por estado.
func (uc *UseCase) Stats() (*dto.TransferStatsResponse, error) {
	stats, err := uc.transferRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.TransferStatsResponse{
		TotalTransfers: stats.Total,
		Pending:        stats.Pending,
		Approved:       stats.Approved,
		Completed:      stats.Completed,
		Rejected:       stats.Rejected,
	}, nil
}

func (uc *UseCase) getTransfer(id string) (*entity.InventoryTransfer, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

func transferToResponse(t *entity.InventoryTransfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		FromStoreID:    t.FromStoreID,
		ToStoreID:      t.ToStoreID,
		ProductID:      t.ProductID,
		Quantity:       t.Quantity,
		Status:         t.Status,
		RequestedBy:    t.RequestedBy,
		ApprovedBy:     t.ApprovedBy,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		CompletedAt:    t.CompletedAt,
	}
}
