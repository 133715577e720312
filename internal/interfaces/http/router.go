package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/internal/domain/repository"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	API           ports.InventoryAPIFactory
	Storage       repository.DurableStorage
	StorageDriver string
	Cookie        CookieConfig
	ConnectURL    string
	// LoginLimit intentos de POST /login por minuto e IP; 0 desactiva el límite.
	LoginLimit int

	AuthUC      *usecase.AuthUseCase
	DashboardUC *usecase.DashboardUseCase
	ProductUC   *usecase.ProductUseCase
	PartnerUC   *usecase.PartnerUseCase
	OrderUC     *usecase.OrderUseCase

	Log *logger.Logger
}

// Router registra las páginas y endpoints JSON del front-end.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	// Públicos sin sesión
	system := NewSystemHandler(deps.API, deps.StorageDriver, log)
	app.Get("/health", system.Health)

	// Sesión para todo lo demás
	app.Use(SessionMiddleware(deps.Storage, deps.Cookie, log))
	app.Use(DiscardDraftsOnNavigation(deps.OrderUC.Drafts()))
	app.Get("/session", system.Session)

	// Auth (público)
	authHandler := NewAuthHandler(deps.API, deps.AuthUC, log)
	loginLimit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.LoginLimit > 0 {
		loginLimit = limiter.New(limiter.Config{
			Max:        deps.LoginLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "demasiados intentos, esperá un minuto")
			},
		})
	}
	app.Get("/login", RedirectIfAuthenticated(), authHandler.LoginPage)
	app.Post("/login", loginLimit, authHandler.Login)
	app.Get("/register", RedirectIfAuthenticated(), authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren token en la sesión)
	protected := app.Group("/", RequireSession())

	dashboard := NewDashboardHandler(deps.API, deps.DashboardUC, log)
	protected.Get("/", dashboard.Show)

	// Products
	products := NewProductHandler(deps.API, deps.ProductUC, log)
	protected.Get("/products", products.List)
	protected.Post("/products", products.Create)
	protected.Get("/products/new", products.New)
	protected.Get("/products/:id", products.Detail)
	protected.Get("/products/:id/edit", products.Edit)
	protected.Post("/products/:id", products.Update)
	protected.Post("/products/:id/delete", products.Delete)
	protected.Post("/products/:id/adjust-stock", products.AdjustStock)

	// Customers / Suppliers
	partners := NewPartnerHandler(deps.API, deps.PartnerUC, log)
	protected.Get("/customers", partners.ListCustomers)
	protected.Post("/customers", partners.CreateCustomer)
	protected.Get("/customers/new", partners.NewCustomer)
	protected.Get("/customers/:id/edit", partners.EditCustomer)
	protected.Post("/customers/:id", partners.UpdateCustomer)
	protected.Post("/customers/:id/delete", partners.DeleteCustomer)
	protected.Get("/suppliers", partners.ListSuppliers)
	protected.Post("/suppliers", partners.CreateSupplier)
	protected.Get("/suppliers/new", partners.NewSupplier)
	protected.Get("/suppliers/:id/edit", partners.EditSupplier)
	protected.Post("/suppliers/:id", partners.UpdateSupplier)
	protected.Post("/suppliers/:id/delete", partners.DeleteSupplier)

	// Sales orders
	orders := NewOrderHandler(deps.API, deps.OrderUC, log)
	protected.Get("/sales-orders", orders.ListSales)
	protected.Get(salesBuilderPath, orders.NewSales)
	protected.Post(salesBuilderPath, orders.SubmitSales)
	protected.Post(salesBuilderPath+"/items", orders.AddSalesItem)
	protected.Post(salesBuilderPath+"/items/:productId/remove", orders.RemoveSalesItem)
	protected.Get("/sales-orders/:id", orders.SalesDetail)
	protected.Get("/sales-orders/:id/pdf", orders.SalesPDF)

	// Purchase orders
	protected.Get("/purchase-orders", orders.ListPurchases)
	protected.Get(purchaseBuilderPath, orders.NewPurchase)
	protected.Post(purchaseBuilderPath, orders.SubmitPurchase)
	protected.Post(purchaseBuilderPath+"/items", orders.AddPurchaseItem)
	protected.Post(purchaseBuilderPath+"/items/:productId/remove", orders.RemovePurchaseItem)
	protected.Get("/purchase-orders/:id", orders.PurchaseDetail)
	protected.Get("/purchase-orders/:id/pdf", orders.PurchasePDF)
	protected.Post("/purchase-orders/:id/status", orders.UpdatePurchaseStatus)

	// Reports
	reports := NewReportHandler(deps.API, log)
	protected.Get("/reports", reports.Page)
	protected.Get("/reports/:kind/xlsx", reports.Download)
	protected.Post("/reports/:kind/email", reports.Email)

	// Integrations
	integrations := NewIntegrationHandler(deps.API, deps.ConnectURL, log)
	protected.Get("/integrations", integrations.List)
	protected.Get("/integrations/mercadolibre/connect", integrations.ConnectMercadoLibre)
	protected.Post("/integrations/:platform/delete", integrations.Delete)

	// Admin
	admin := NewAdminHandler(deps.API, deps.AuthUC, log)
	protected.Get("/admin/users", admin.UsersPage)
	protected.Post("/admin/users", admin.CreateUser)

	// Scanner
	protected.Get("/scanner", system.ScannerPage)
	protected.Get("/scanner/lookup", system.ScannerLookup)
}
