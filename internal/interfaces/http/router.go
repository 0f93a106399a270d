package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retailpos-api/internal/application/analytics"
	"github.com/jhoicas/retailpos-api/internal/application/auth"
	"github.com/jhoicas/retailpos-api/internal/application/inventory"
	"github.com/jhoicas/retailpos-api/internal/application/purchases"
	"github.com/jhoicas/retailpos-api/internal/application/sales"
	"github.com/jhoicas/retailpos-api/internal/application/transfers"
	"github.com/jhoicas/retailpos-api/internal/application/usecase"
	"github.com/jhoicas/retailpos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	StoreUC     *usecase.StoreUseCase
	InventoryUC *inventory.UseCase
	AnalyticsUC *analytics.UseCase
	SalesUC     *sales.UseCase
	PurchasesUC *purchases.UseCase
	TransfersUC *transfers.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: login público, registro solo admin.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", adminOnly, authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)

	// Administración de usuarios (solo admin)
	protected.Get("/users", adminOnly, authHandler.ListUsers)
	protected.Put("/users/:id", adminOnly, authHandler.UpdateUser)
	protected.Delete("/users/:id", adminOnly, authHandler.DeactivateUser)
	protected.Post("/users/:id/reset-password", adminOnly, authHandler.ResetPassword)

	// Products (protegido; escritura solo admin/manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", managers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Deactivate)

	// Inventory (protegido; mutaciones solo admin/manager)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/", inventoryHandler.ListInventory)
	invGroup.Get("/summary", inventoryHandler.Summary)
	invGroup.Get("/alerts", inventoryHandler.LowStockAlerts)
	invGroup.Get("/adjustments", inventoryHandler.ListAdjustments)
	invGroup.Post("/:productId/adjust", managers, inventoryHandler.AdjustStock)
	invGroup.Put("/:productId/reorder-point", managers, inventoryHandler.UpdateReorderPoint)

	// Analytics (protegido; reportes gerenciales solo admin/manager)
	analyticsGroup := protected.Group("/analytics", managers)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/sales-trends", analyticsHandler.SalesTrends)
	analyticsGroup.Get("/profit-analysis", analyticsHandler.ProfitAnalysis)
	analyticsGroup.Get("/top-products", analyticsHandler.TopProducts)
	analyticsGroup.Get("/revenue-by-category", analyticsHandler.RevenueByCategory)
	analyticsGroup.Get("/customer-insights", analyticsHandler.CustomerInsights)

	// Sales (protegido; cualquier rol autenticado vende)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/invoice/:number", saleHandler.GetByInvoiceNumber)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Purchases (protegido; crear solo admin/manager)
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	purchasesGroup.Post("/", managers, purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)

	// Transfers (protegido; aprobar/completar/rechazar validan rol en el use case)
	transfersGroup := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransfersUC)
	transfersGroup.Post("/", transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)
	transfersGroup.Get("/stats", transferHandler.Stats)
	transfersGroup.Get("/:id", transferHandler.GetByID)
	transfersGroup.Post("/:id/approve", transferHandler.Approve)
	transfersGroup.Post("/:id/complete", transferHandler.Complete)
	transfersGroup.Post("/:id/reject", transferHandler.Reject)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/phone/:phone", customerHandler.GetByPhone)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Suppliers (protegido; escritura solo admin/manager)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", managers, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", managers, supplierHandler.Update)

	// Stores (protegido; escritura solo admin)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", adminOnly, storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", adminOnly, storeHandler.Update)
}
