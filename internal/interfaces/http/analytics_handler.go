package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retailpos-api/internal/application/analytics"
)

// AnalyticsHandler maneja los reportes de ventas y rentabilidad.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler de analítica.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// SalesTrends godoc
// @Summary      Tendencia de ventas por día
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default: inicio del mes)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.SalesTrendsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales-trends [get]
func (h *AnalyticsHandler) SalesTrends(c *fiber.Ctx) error {
	out, err := h.uc.SalesTrends(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProfitAnalysis godoc
// @Summary      Rentabilidad bruta del período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ProfitAnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/profit-analysis [get]
func (h *AnalyticsHandler) ProfitAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.ProfitAnalysis(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos por ingreso
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Tamaño del ranking"  default(10)
// @Success      200  {object}  dto.TopProductsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Query("start_date"), c.Query("end_date"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RevenueByCategory godoc
// @Summary      Ingreso por categoría
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.RevenueByCategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/revenue-by-category [get]
func (h *AnalyticsHandler) RevenueByCategory(c *fiber.Ctx) error {
	out, err := h.uc.RevenueByCategory(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CustomerInsights godoc
// @Summary      Métricas de clientes del período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.CustomerInsightsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/customer-insights [get]
func (h *AnalyticsHandler) CustomerInsights(c *fiber.Ctx) error {
	out, err := h.uc.CustomerInsights(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
