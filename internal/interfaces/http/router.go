package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stylelane-api/internal/application/analytics"
	"github.com/jhoicas/stylelane-api/internal/application/auth"
	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/application/usecase"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	StoreUC          *usecase.StoreUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	InventoryUC      *inventory.InventoryUseCase
	SaleUC           *inventory.SaleUseCase
	RestockUC        *inventory.RestockUseCase
	ShipNoticeUC     *inventory.ShipNoticeUseCase
	RecommendationUC *inventory.RecommendationUseCase
	AnalyticsUC      *appanalytics.AnalyticsUseCase
	ReportUC         *appanalytics.ReportUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)

	// Admin
	adminHandler := NewAdminHandler(deps.StoreUC, deps.UserUC, deps.DashboardUC)
	admin := api.Group("/admin", authn, RequireRole(entity.RoleAdmin))
	admin.Post("/stores", adminHandler.CreateStore)
	admin.Get("/stores", adminHandler.ListStores)
	admin.Post("/managers", adminHandler.CreateManager)
	admin.Post("/suppliers", adminHandler.CreateSupplier)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/dashboard", adminHandler.Dashboard)

	// Manager: solo sobre su propia tienda
	managerHandler := NewManagerHandler(deps.InventoryUC, deps.SaleUC, deps.RestockUC)
	manager := api.Group("/manager", authn, RequireRole(entity.RoleManager))
	manager.Get("/inventory", managerHandler.ListInventory)
	manager.Patch("/inventory/:id/threshold", managerHandler.UpdateThreshold)
	manager.Post("/products", managerHandler.AddProduct)
	manager.Post("/sales", managerHandler.RecordSale)
	manager.Post("/restock-requests", managerHandler.SubmitRestock)
	manager.Get("/restock-requests", managerHandler.ListRestocks)

	// Supplier
	supplierHandler := NewSupplierHandler(deps.RestockUC, deps.ShipNoticeUC)
	supplier := api.Group("/supplier", authn, RequireRole(entity.RoleSupplier))
	supplier.Get("/restock-requests", supplierHandler.ListOpen)
	supplier.Post("/restock-requests/:id/transition", supplierHandler.Transition)

	// ASN: el caso de uso decide qué roles lo pueden ver
	api.Get("/shipments/:requestId/asn", authn, supplierHandler.ShipNotice)

	// Reportes y catálogo (cualquier rol autenticado)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.ReportUC, deps.RecommendationUC)
	api.Get("/analytics", authn, analyticsHandler.Get)
	api.Get("/reports/sales", authn, analyticsHandler.SalesReport)
	api.Get("/reports/sales/pdf", authn, analyticsHandler.SalesReportPDF)
	api.Get("/recommendations", authn, analyticsHandler.Recommendations)

	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/products/search", authn, productHandler.Search)
	api.Get("/products/:id/label", authn, productHandler.Label)
}
