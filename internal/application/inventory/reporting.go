package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/retailpos-api/internal/application/dto"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
	"github.com/jhoicas/retailpos-api/internal/domain/repository"
)

// Claves y TTL del caché de reportes. Los ajustes manuales y los cambios de
// punto de reorden invalidan las claves; las ventas y compras no lo hacen, por
// lo que un reporte puede llevar hasta el TTL de atraso respecto a ellas.
const (
	cacheKeySummary = "inventory:summary"
	cacheKeyAlerts  = "inventory:alerts"
	reportCacheTTL  = 60 * time.Second
)

// Summary devuelve las estadísticas agregadas del inventario activo,
// sirviéndolas desde caché cuando hay una copia fresca.
func (uc *UseCase) Summary(ctx context.Context) (*dto.InventorySummaryResponse, error) {
	if uc.cache != nil {
		if raw, ok, err := uc.cache.Get(ctx, cacheKeySummary); err == nil && ok {
			var cached dto.InventorySummaryResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	summary, err := uc.analytics.InventorySummary()
	if err != nil {
		return nil, err
	}
	categories := make([]dto.CategorySummaryDTO, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, dto.CategorySummaryDTO{
			Category:     c.Category,
			ProductCount: c.ProductCount,
			TotalStock:   c.TotalStock,
		})
	}
	resp := &dto.InventorySummaryResponse{
		TotalProducts:       summary.TotalProducts,
		LowStockCount:       summary.LowStockCount,
		OutOfStockCount:     summary.OutOfStockCount,
		TotalInventoryValue: summary.TotalInventoryValue,
		TotalUnits:          summary.TotalUnits,
		Categories:          categories,
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			_ = uc.cache.Set(ctx, cacheKeySummary, raw, reportCacheTTL)
		}
	}
	return resp, nil
}

// LowStockAlerts lista productos en o bajo el punto de reorden, con la
// cantidad sugerida a pedir. critical = agotado, warning = stock bajo.
func (uc *UseCase) LowStockAlerts(ctx context.Context) (*dto.LowStockAlertsResponse, error) {
	if uc.cache != nil {
		if raw, ok, err := uc.cache.Get(ctx, cacheKeyAlerts); err == nil && ok {
			var cached dto.LowStockAlertsResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	products, _, err := uc.productRepo.List(repository.ProductFilter{LowStockOnly: true})
	if err != nil {
		return nil, err
	}
	resp := &dto.LowStockAlertsResponse{Alerts: make([]dto.LowStockAlert, 0, len(products))}
	for _, p := range products {
		level := "warning"
		if p.StockStatus() == entity.StockStatusOutOfStock {
			level = "critical"
			resp.CriticalCount++
		} else {
			resp.WarningCount++
		}
		resp.Alerts = append(resp.Alerts, dto.LowStockAlert{
			ID:              p.ID,
			Barcode:         p.Barcode,
			Name:            p.Name,
			Category:        p.Category,
			CurrentStock:    p.CurrentStock,
			MinimumStock:    p.MinimumStock,
			AlertLevel:      level,
			ReorderQuantity: p.ReorderQuantity(),
		})
	}
	resp.TotalAlerts = len(resp.Alerts)

	if uc.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			_ = uc.cache.Set(ctx, cacheKeyAlerts, raw, reportCacheTTL)
		}
	}
	return resp, nil
}

// invalidateReports borra las copias cacheadas tras una mutación de stock.
// Best effort: si el caché no responde, la próxima lectura recalcula.
func (uc *UseCase) invalidateReports(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, cacheKeySummary, cacheKeyAlerts)
}
