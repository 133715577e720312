package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// Verificar en tiempo de compilación que Conn implementa el puerto completo.
var (
	_ ports.InventoryAPI        = (*Conn)(nil)
	_ ports.InventoryAPIFactory = (*Client)(nil)
)

// For implementa ports.InventoryAPIFactory.
func (c *Client) For(creds ports.Credentials) ports.InventoryAPI {
	return c.Conn(creds)
}

// Health GET /health de la API.
func (c *Conn) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func (c *Conn) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, error) {
	var out entity.User
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) CreateUserByAdmin(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error) {
	var out entity.User
	if err := c.do(ctx, http.MethodPost, "/admin/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (c *Conn) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) CreateProduct(ctx context.Context, in dto.ProductInput) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) UpdateProduct(ctx context.Context, id int64, in dto.ProductInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, nil)
}

func (c *Conn) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (c *Conn) ProductMovements(ctx context.Context, id int64) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/movements", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) AdjustStock(ctx context.Context, id int64, req dto.AdjustStockRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/products/%d/adjust-stock", id), req, nil)
}

// ── Clientes y proveedores ────────────────────────────────────────────────────

func (c *Conn) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	var out []entity.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) GetCustomer(ctx context.Context, id int64) (*entity.Customer, error) {
	var out entity.Customer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) CreateCustomer(ctx context.Context, in dto.CustomerInput) (*entity.Customer, error) {
	var out entity.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) UpdateCustomer(ctx context.Context, id int64, in dto.CustomerInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), in, nil)
}

func (c *Conn) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
}

func (c *Conn) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	var out []entity.Supplier
	if err := c.do(ctx, http.MethodGet, "/suppliers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/suppliers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) CreateSupplier(ctx context.Context, in dto.SupplierInput) (*entity.Supplier, error) {
	var out entity.Supplier
	if err := c.do(ctx, http.MethodPost, "/suppliers", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) UpdateSupplier(ctx context.Context, id int64, in dto.SupplierInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/suppliers/%d", id), in, nil)
}

func (c *Conn) DeleteSupplier(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/suppliers/%d", id), nil, nil)
}

// ── Órdenes ───────────────────────────────────────────────────────────────────

func (c *Conn) ListSalesOrders(ctx context.Context) ([]entity.SalesOrder, error) {
	var out []entity.SalesOrder
	if err := c.do(ctx, http.MethodGet, "/sales-orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) GetSalesOrder(ctx context.Context, id int64) (*entity.SalesOrderDetail, error) {
	var out entity.SalesOrderDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sales-orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) CreateSalesOrder(ctx context.Context, payload order.SalesPayload) (*entity.SalesOrderDetail, error) {
	var out entity.SalesOrderDetail
	if err := c.do(ctx, http.MethodPost, "/sales-orders", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) ListPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	var out []entity.PurchaseOrder
	if err := c.do(ctx, http.MethodGet, "/purchase-orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) GetPurchaseOrder(ctx context.Context, id int64) (*entity.PurchaseOrderDetail, error) {
	var out entity.PurchaseOrderDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/purchase-orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) CreatePurchaseOrder(ctx context.Context, payload order.PurchasePayload) (*entity.PurchaseOrderDetail, error) {
	var out entity.PurchaseOrderDetail
	if err := c.do(ctx, http.MethodPost, "/purchase-orders", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) UpdatePurchaseOrderStatus(ctx context.Context, id int64, status string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/purchase-orders/%d/status", id), dto.UpdateStatusRequest{Status: status}, nil)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (c *Conn) DashboardMetrics(ctx context.Context) (*entity.DashboardMetrics, error) {
	var out entity.DashboardMetrics
	if err := c.do(ctx, http.MethodGet, "/dashboard/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) DashboardKPIs(ctx context.Context) (*entity.DashboardKPIs, error) {
	var out entity.DashboardKPIs
	if err := c.do(ctx, http.MethodGet, "/dashboard/kpis", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Conn) DashboardCharts(ctx context.Context) (*entity.ChartData, error) {
	var out entity.ChartData
	if err := c.do(ctx, http.MethodGet, "/dashboard/charts", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func (c *Conn) DownloadReport(ctx context.Context, kind dto.ReportKind) ([]byte, string, error) {
	if _, ok := kind.Filename(); !ok {
		return nil, "", fmt.Errorf("apiclient: reporte desconocido %q", kind)
	}
	return c.Download(ctx, "/reports/"+url.PathEscape(string(kind))+"/xlsx")
}

func (c *Conn) EmailReport(ctx context.Context, kind dto.ReportKind) (string, error) {
	if !kind.Emailable() {
		return "", fmt.Errorf("apiclient: el reporte %q no se envía por email", kind)
	}
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/reports/"+url.PathEscape(string(kind))+"/email", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ── Integraciones ─────────────────────────────────────────────────────────────

func (c *Conn) ListIntegrations(ctx context.Context) ([]dto.IntegrationView, error) {
	var out []dto.IntegrationView
	if err := c.do(ctx, http.MethodGet, "/integrations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) DeleteIntegration(ctx context.Context, platform string) error {
	return c.do(ctx, http.MethodDelete, "/integrations/"+url.PathEscape(platform), nil, nil)
}

func (c *Conn) MercadoLibreAuthURL(ctx context.Context) (string, error) {
	return c.RedirectLocation(ctx, "/integrations/"+entity.PlatformMercadoLibre+"/connect")
}
