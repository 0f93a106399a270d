package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/application/transfers"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// TransferHandler maneja traslados entre tiendas y su flujo de aprobación (protegido).
type TransferHandler struct {
	uc *transfers.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfers.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar traslado entre tiendas
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_store_id, to_store_id, product_id, quantity, notes"
// @Success      201  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "traslado no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status         query  string  false  "pending | approved | completed | rejected"
// @Param        from_store_id  query  string  false  "Tienda origen"
// @Param        to_store_id    query  string  false  "Tienda destino"
// @Param        limit          query  int     false  "Límite"  default(50)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	filter := repository.TransferFilter{
		Status:      c.Query("status"),
		FromStoreID: c.Query("from_store_id"),
		ToStoreID:   c.Query("to_store_id"),
		Limit:       c.QueryInt("limit", 50),
		Offset:      c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

// Stats godoc
// @Summary      Conteo de traslados por estado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransferStatsResponse
// @Router       /api/transfers/stats [get]
func (h *TransferHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar traslado pendiente
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar traslado aprobado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar traslado
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.RejectTransferRequest  false  "notes con el motivo"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectTransferRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Reject(c.Context(), GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
