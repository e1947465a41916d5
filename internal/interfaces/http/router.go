package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfarias/backoffice-api/internal/application/auth"
	"github.com/mfarias/backoffice-api/internal/application/inventory"
	"github.com/mfarias/backoffice-api/internal/application/purchasing"
	"github.com/mfarias/backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	DepositUC        *usecase.DepositUseCase
	SupplierUC       *usecase.SupplierUseCase
	RegisterPurchase *purchasing.RegisterPurchaseUseCase
	PurchaseQuery    *purchasing.PurchaseQueryUseCase
	KardexQuery      *inventory.KardexQueryUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Compras (protegido; registrar y abonar requieren rol de compras)
	compras := protected.Group("/compras")
	purchaseHandler := NewPurchaseHandler(deps.RegisterPurchase, deps.PurchaseQuery)
	compras.Post("/", RequireRole("admin", "compras"), purchaseHandler.Register)
	compras.Get("/", purchaseHandler.List)
	compras.Get("/:id", purchaseHandler.GetByID)
	compras.Put("/:id/pago", RequireRole("admin", "compras"), purchaseHandler.RegisterPayment)

	// Productos (protegido; el borrado es solo admin)
	productos := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	productos.Post("/", RequireRole("admin", "compras"), productHandler.Create)
	productos.Get("/", productHandler.List)
	productos.Get("/:id", productHandler.GetByID)
	productos.Put("/:id", RequireRole("admin", "compras"), productHandler.Update)
	productos.Delete("/:id", RequireRole("admin"), productHandler.Delete)
	productos.Get("/:id/precios", productHandler.PriceHistory)

	// Depósitos (protegido)
	depositos := protected.Group("/depositos")
	depositHandler := NewDepositHandler(deps.DepositUC)
	depositos.Post("/", RequireRole("admin", "compras"), depositHandler.Create)
	depositos.Get("/", depositHandler.List)
	depositos.Get("/:id", depositHandler.GetByID)

	// Proveedores (protegido)
	proveedores := protected.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	proveedores.Post("/", RequireRole("admin", "compras"), supplierHandler.Create)
	proveedores.Get("/", supplierHandler.List)
	proveedores.Get("/:id", supplierHandler.GetByID)

	// Kardex y existencias (protegido, solo lectura)
	kardexHandler := NewKardexHandler(deps.KardexQuery)
	kardex := protected.Group("/kardex")
	kardex.Get("/:id_producto", kardexHandler.General)
	kardex.Get("/:id_producto/deposito/:id_deposito", kardexHandler.Local)
	existencias := protected.Group("/existencias")
	existencias.Get("/deposito/:id_deposito", kardexHandler.ExistencesByDeposit)
	existencias.Get("/producto/:id_producto", kardexHandler.ExistencesByProduct)
}
