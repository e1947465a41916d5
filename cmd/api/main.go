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

	"github.com/mfarias/backoffice-api/internal/application/auth"
	"github.com/mfarias/backoffice-api/internal/application/inventory"
	"github.com/mfarias/backoffice-api/internal/application/purchasing"
	"github.com/mfarias/backoffice-api/internal/application/usecase"
	"github.com/mfarias/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/mfarias/backoffice-api/internal/interfaces/http"
	"github.com/mfarias/backoffice-api/pkg/config"
	"github.com/mfarias/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	depositRepo := postgres.NewDepositRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	existenceRepo := postgres.NewExistenceRepository(pool)
	kardexRepo := postgres.NewKardexRepository(pool)
	auditRepo := postgres.NewPriceAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, auditRepo)
	depositUC := usecase.NewDepositUseCase(depositRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	registerPurchaseUC := purchasing.NewRegisterPurchaseUseCase(
		txRunner, supplierRepo, depositRepo, productRepo, purchaseRepo,
	)
	purchaseQueryUC := purchasing.NewPurchaseQueryUseCase(purchaseRepo)
	kardexQueryUC := inventory.NewKardexQueryUseCase(kardexRepo, existenceRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		DepositUC:        depositUC,
		SupplierUC:       supplierUC,
		RegisterPurchase: registerPurchaseUC,
		PurchaseQuery:    purchaseQueryUC,
		KardexQuery:      kardexQueryUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
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
