package ports

import (
	"context"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// Credentials lo que la capa de transporte necesita de la sesión del navegador.
// Invalidate se invoca ante cualquier 401 y debe ser idempotente.
type Credentials interface {
	Token() string
	Invalidate(ctx context.Context) error
}

// InventoryAPIFactory entrega un cliente de la API ligado a unas credenciales.
// creds nil = llamadas anónimas (login, registro).
type InventoryAPIFactory interface {
	For(creds Credentials) InventoryAPI
}

// AuthAPI sesión y usuarios.
type AuthAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, error)
	CreateUserByAdmin(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error)
}

// ProductAPI catálogo y movimientos de stock.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, in dto.ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, in dto.ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
	ProductMovements(ctx context.Context, id int64) ([]entity.StockMovement, error)
	AdjustStock(ctx context.Context, id int64, req dto.AdjustStockRequest) error
}

// PartnerAPI clientes y proveedores.
type PartnerAPI interface {
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*entity.Customer, error)
	CreateCustomer(ctx context.Context, in dto.CustomerInput) (*entity.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, in dto.CustomerInput) error
	DeleteCustomer(ctx context.Context, id int64) error

	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error)
	CreateSupplier(ctx context.Context, in dto.SupplierInput) (*entity.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, in dto.SupplierInput) error
	DeleteSupplier(ctx context.Context, id int64) error
}

// OrderAPI órdenes de venta y compra.
type OrderAPI interface {
	ListSalesOrders(ctx context.Context) ([]entity.SalesOrder, error)
	GetSalesOrder(ctx context.Context, id int64) (*entity.SalesOrderDetail, error)
	CreateSalesOrder(ctx context.Context, payload order.SalesPayload) (*entity.SalesOrderDetail, error)

	ListPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id int64) (*entity.PurchaseOrderDetail, error)
	CreatePurchaseOrder(ctx context.Context, payload order.PurchasePayload) (*entity.PurchaseOrderDetail, error)
	UpdatePurchaseOrderStatus(ctx context.Context, id int64, status string) error
}

// DashboardAPI métricas, KPIs y series.
type DashboardAPI interface {
	DashboardMetrics(ctx context.Context) (*entity.DashboardMetrics, error)
	DashboardKPIs(ctx context.Context) (*entity.DashboardKPIs, error)
	DashboardCharts(ctx context.Context) (*entity.ChartData, error)
}

// ReportAPI exportaciones Excel y reportes por email.
type ReportAPI interface {
	DownloadReport(ctx context.Context, kind dto.ReportKind) (data []byte, contentType string, err error)
	EmailReport(ctx context.Context, kind dto.ReportKind) (message string, err error)
}

// IntegrationAPI conexiones OAuth con marketplaces.
type IntegrationAPI interface {
	ListIntegrations(ctx context.Context) ([]dto.IntegrationView, error)
	DeleteIntegration(ctx context.Context, platform string) error
	// MercadoLibreAuthURL pide a la API la URL de autorización (la API responde 302).
	MercadoLibreAuthURL(ctx context.Context) (string, error)
}

// InventoryAPI puerto de salida completo hacia la API REST de inventario.
type InventoryAPI interface {
	AuthAPI
	ProductAPI
	PartnerAPI
	OrderAPI
	DashboardAPI
	ReportAPI
	IntegrationAPI
	Health(ctx context.Context) error
}
