package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/purchase"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC          *usecase.ItemUseCase
	SupplierUC      *usecase.SupplierUseCase
	AnalyticsUC     *usecase.AnalyticsUseCase
	AdjustStock     *stock.AdjustStockUseCase
	AdjustmentRepo  repository.StockAdjustmentRepository
	WorkOrderUC     *workorder.WorkOrderUseCase
	PurchaseOrderUC *purchase.PurchaseOrderUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
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

	// Items: catálogo (protegido); escrituras solo ADMIN o WAREHOUSE_MANAGER
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	catalogWrite := RequireRole(entity.RoleAdmin, entity.RoleWarehouseManager)
	items.Post("/", catalogWrite, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", catalogWrite, itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Ajustes de stock: único camino de escritura sobre current_stock
	stockHandler := NewStockHandler(deps.AdjustStock, deps.AdjustmentRepo)
	items.Post("/:id/adjustments", RequireRole(entity.RoleAdmin, entity.RoleWarehouseManager), stockHandler.Adjust)
	items.Get("/:id/adjustments", stockHandler.History)

	// Work orders (protegido); completar: técnico o admin
	workOrders := protected.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Post("/", RequireRole(entity.RoleAdmin, entity.RoleWarehouseManager), workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Post("/:id/start", RequireRole(entity.RoleAdmin, entity.RoleTechnician), workOrderHandler.Start)
	workOrders.Post("/:id/complete", RequireRole(entity.RoleAdmin, entity.RoleTechnician), workOrderHandler.Complete)

	// Purchase orders (protegido)
	purchaseOrders := protected.Group("/purchase-orders")
	purchaseOrderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	purchaseOrders.Post("/", RequireRole(entity.RoleAdmin, entity.RoleWarehouseManager), purchaseOrderHandler.Create)
	purchaseOrders.Get("/", purchaseOrderHandler.List)
	purchaseOrders.Get("/:id", purchaseOrderHandler.GetByID)
	purchaseOrders.Patch("/:id/status", RequireRole(entity.RoleAdmin), purchaseOrderHandler.UpdateStatus)

	// Suppliers (protegido); escrituras solo ADMIN o WAREHOUSE_MANAGER
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", catalogWrite, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", catalogWrite, supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Analytics (protegido, read-only)
	analytics := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/inventory-summary", analyticsHandler.InventorySummary)
}
