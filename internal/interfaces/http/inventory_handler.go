package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/application/inventory"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// InventoryHandler maneja ajustes de stock, listados de inventario y reportes (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  Registra un ajuste (restock, damage, theft, correction) con su fila
//
//	de auditoría. El tipo sale está reservado para el flujo de ventas.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "adjustment_type, quantity_change, reason"
// @Success      201  {object}  dto.AdjustStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("productId")
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdjustStock(c.Context(), userID, productID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAdjustments godoc
// @Summary      Historial de ajustes de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo de ajuste"
// @Param        from        query  string  false  "Desde (RFC3339)"
// @Param        to          query  string  false  "Hasta (RFC3339)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AdjustmentListResponse
// @Router       /api/inventory/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *fiber.Ctx) error {
	filter := repository.AdjustmentFilter{
		ProductID:      c.Query("product_id"),
		AdjustmentType: c.Query("type"),
		Limit:          c.QueryInt("limit", 50),
		Offset:         c.QueryInt("offset", 0),
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}
	out, err := h.uc.ListAdjustments(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListInventory godoc
// @Summary      Estado del inventario por producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "Categoría exacta"
// @Param        search     query  string  false  "Busca en nombre, barcode y descripción"
// @Param        low_stock  query  bool    false  "Solo productos en o bajo el punto de reorden"
// @Param        limit      query  int     false  "Límite"  default(50)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category:     c.Query("category"),
		Search:       c.Query("search"),
		LowStockOnly: c.QueryBool("low_stock"),
		Limit:        c.QueryInt("limit", 50),
		Offset:       c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListInventory(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen agregado del inventario
// @Description  Totales, conteos de stock bajo y agotado, valor al costo y desglose
//
//	por categoría. Respuesta cacheada 60s.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) LowStockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateReorderPoint godoc
// @Summary      Actualizar punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.UpdateReorderPointRequest  true  "minimum_stock"
// @Success      200  {object}  dto.UpdateReorderPointResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/reorder-point [put]
func (h *InventoryHandler) UpdateReorderPoint(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var in dto.UpdateReorderPointRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateReorderPoint(c.Context(), productID, in.MinimumStock)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
