package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// fakeAPI implementa ports.InventoryAPI en memoria y cuenta las llamadas.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	products  []entity.Product
	customers []entity.Customer
	suppliers []entity.Supplier

	loginResp *dto.LoginResponse
	loginErr  error
	regErr    error
	createErr error
	listErr   error

	salesDetail    *entity.SalesOrderDetail
	purchaseDetail *entity.PurchaseOrderDetail
	lastSales      *order.SalesPayload
	lastPurchase   *order.PurchasePayload
	lastStatus     string
	lastAdjust     *dto.AdjustStockRequest

	metrics *entity.DashboardMetrics
	kpis    *entity.DashboardKPIs
	charts  *entity.ChartData
	dashErr error
}

var _ ports.InventoryAPI = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) For(ports.Credentials) ports.InventoryAPI { return f }

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Health(context.Context) error { f.hit("Health"); return nil }

func (f *fakeAPI) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	f.hit("Login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Register(_ context.Context, req dto.RegisterRequest) (*entity.User, error) {
	f.hit("Register")
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &entity.User{ID: 9, Name: req.Name, Email: req.Email, Role: entity.RoleVendedor}, nil
}

func (f *fakeAPI) CreateUserByAdmin(_ context.Context, req dto.CreateUserRequest) (*entity.User, error) {
	f.hit("CreateUserByAdmin")
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &entity.User{ID: 10, Name: req.Name, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]entity.Product, error) {
	f.hit("ListProducts")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeAPI) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	f.hit("GetProduct")
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return &entity.Product{ID: id}, nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, in dto.ProductInput) (*entity.Product, error) {
	f.hit("CreateProduct")
	return &entity.Product{ID: 1, Name: in.Name, SKU: in.SKU, Quantity: in.Quantity}, nil
}

func (f *fakeAPI) UpdateProduct(context.Context, int64, dto.ProductInput) error {
	f.hit("UpdateProduct")
	return nil
}

func (f *fakeAPI) DeleteProduct(context.Context, int64) error { f.hit("DeleteProduct"); return nil }

func (f *fakeAPI) ProductMovements(context.Context, int64) ([]entity.StockMovement, error) {
	f.hit("ProductMovements")
	return []entity.StockMovement{{ID: 1, QuantityChange: 3, Reason: entity.ReasonManualAdjustment}}, nil
}

func (f *fakeAPI) AdjustStock(_ context.Context, _ int64, req dto.AdjustStockRequest) error {
	f.hit("AdjustStock")
	f.lastAdjust = &req
	return nil
}

func (f *fakeAPI) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	f.hit("ListCustomers")
	return f.customers, nil
}

func (f *fakeAPI) GetCustomer(_ context.Context, id int64) (*entity.Customer, error) {
	f.hit("GetCustomer")
	for _, c := range f.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return &entity.Customer{ID: id}, nil
}

func (f *fakeAPI) CreateCustomer(_ context.Context, in dto.CustomerInput) (*entity.Customer, error) {
	f.hit("CreateCustomer")
	return &entity.Customer{ID: 1, Name: in.Name, Email: in.Email}, nil
}

func (f *fakeAPI) UpdateCustomer(context.Context, int64, dto.CustomerInput) error {
	f.hit("UpdateCustomer")
	return nil
}

func (f *fakeAPI) DeleteCustomer(context.Context, int64) error { f.hit("DeleteCustomer"); return nil }

func (f *fakeAPI) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	f.hit("ListSuppliers")
	return f.suppliers, nil
}

func (f *fakeAPI) GetSupplier(_ context.Context, id int64) (*entity.Supplier, error) {
	f.hit("GetSupplier")
	for _, s := range f.suppliers {
		if s.ID == id {
			return &s, nil
		}
	}
	return &entity.Supplier{ID: id}, nil
}

func (f *fakeAPI) CreateSupplier(_ context.Context, in dto.SupplierInput) (*entity.Supplier, error) {
	f.hit("CreateSupplier")
	return &entity.Supplier{ID: 1, Name: in.Name}, nil
}

func (f *fakeAPI) UpdateSupplier(context.Context, int64, dto.SupplierInput) error {
	f.hit("UpdateSupplier")
	return nil
}

func (f *fakeAPI) DeleteSupplier(context.Context, int64) error { f.hit("DeleteSupplier"); return nil }

func (f *fakeAPI) ListSalesOrders(context.Context) ([]entity.SalesOrder, error) {
	f.hit("ListSalesOrders")
	return nil, nil
}

func (f *fakeAPI) GetSalesOrder(context.Context, int64) (*entity.SalesOrderDetail, error) {
	f.hit("GetSalesOrder")
	return f.salesDetail, nil
}

func (f *fakeAPI) CreateSalesOrder(_ context.Context, p order.SalesPayload) (*entity.SalesOrderDetail, error) {
	f.hit("CreateSalesOrder")
	f.lastSales = &p
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.SalesOrderDetail{Order: entity.SalesOrder{ID: 55}}, nil
}

func (f *fakeAPI) ListPurchaseOrders(context.Context) ([]entity.PurchaseOrder, error) {
	f.hit("ListPurchaseOrders")
	return nil, nil
}

func (f *fakeAPI) GetPurchaseOrder(context.Context, int64) (*entity.PurchaseOrderDetail, error) {
	f.hit("GetPurchaseOrder")
	return f.purchaseDetail, nil
}

func (f *fakeAPI) CreatePurchaseOrder(_ context.Context, p order.PurchasePayload) (*entity.PurchaseOrderDetail, error) {
	f.hit("CreatePurchaseOrder")
	f.lastPurchase = &p
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.PurchaseOrderDetail{Order: entity.PurchaseOrder{ID: 77}}, nil
}

func (f *fakeAPI) UpdatePurchaseOrderStatus(_ context.Context, _ int64, status string) error {
	f.hit("UpdatePurchaseOrderStatus")
	f.lastStatus = status
	return nil
}

func (f *fakeAPI) DashboardMetrics(context.Context) (*entity.DashboardMetrics, error) {
	f.hit("DashboardMetrics")
	if f.dashErr != nil {
		return nil, f.dashErr
	}
	return f.metrics, nil
}

func (f *fakeAPI) DashboardKPIs(ctx context.Context) (*entity.DashboardKPIs, error) {
	f.hit("DashboardKPIs")
	return f.kpis, nil
}

func (f *fakeAPI) DashboardCharts(ctx context.Context) (*entity.ChartData, error) {
	f.hit("DashboardCharts")
	return f.charts, nil
}

func (f *fakeAPI) DownloadReport(context.Context, dto.ReportKind) ([]byte, string, error) {
	f.hit("DownloadReport")
	return []byte("xlsx"), "application/octet-stream", nil
}

func (f *fakeAPI) EmailReport(context.Context, dto.ReportKind) (string, error) {
	f.hit("EmailReport")
	return "enviado", nil
}

func (f *fakeAPI) ListIntegrations(context.Context) ([]dto.IntegrationView, error) {
	f.hit("ListIntegrations")
	return nil, nil
}

func (f *fakeAPI) DeleteIntegration(context.Context, string) error {
	f.hit("DeleteIntegration")
	return nil
}

func (f *fakeAPI) MercadoLibreAuthURL(context.Context) (string, error) {
	f.hit("MercadoLibreAuthURL")
	return "https://auth.example.com", nil
}

// fakeSession registra el login/logout pedido por el caso de uso.
type fakeSession struct {
	token    string
	user     *entity.User
	loginErr error
}

func (s *fakeSession) Login(_ context.Context, token string, user entity.User) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.token, s.user = token, &user
	return nil
}

func (s *fakeSession) Logout(context.Context) error {
	s.token, s.user = "", nil
	return nil
}

// fakePDF devuelve los datos recibidos para inspección.
type fakePDF struct {
	last ports.OrderPDFData
}

func (p *fakePDF) GenerateOrderPDF(data ports.OrderPDFData) ([]byte, error) {
	p.last = data
	return []byte("%PDF-1.4"), nil
}
