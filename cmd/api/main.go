package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/retailpos-api/internal/application/analytics"
	"github.com/jhoicas/retailpos-api/internal/application/auth"
	"github.com/jhoicas/retailpos-api/internal/application/inventory"
	"github.com/jhoicas/retailpos-api/internal/application/purchases"
	"github.com/jhoicas/retailpos-api/internal/application/sales"
	"github.com/jhoicas/retailpos-api/internal/application/transfers"
	"github.com/jhoicas/retailpos-api/internal/application/usecase"
	infracache "github.com/jhoicas/retailpos-api/internal/infrastructure/cache"
	"github.com/jhoicas/retailpos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retailpos-api/internal/interfaces/http"
	"github.com/jhoicas/retailpos-api/pkg/config"
	"github.com/jhoicas/retailpos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR los reportes se calculan siempre en vivo.
	var reportCache inventory.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := infracache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		reportCache = infracache.NewRedisCache(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de reportes habilitado")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, adjustmentRepo, analyticsRepo, reportCache)
	analyticsUC := analytics.NewUseCase(analyticsRepo)
	salesUC := sales.NewUseCase(txRunner, saleRepo, productRepo, customerRepo)
	purchasesUC := purchases.NewUseCase(txRunner, purchaseRepo, productRepo, supplierRepo)
	transfersUC := transfers.NewUseCase(txRunner, transferRepo, productRepo, storeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RetailPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		StoreUC:     storeUC,
		InventoryUC: inventoryUC,
		AnalyticsUC: analyticsUC,
		SalesUC:     salesUC,
		PurchasesUC: purchasesUC,
		TransfersUC: transfersUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
