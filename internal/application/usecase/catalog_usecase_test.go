package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/domain"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

func TestProducts_ListFiltraPorNombreOSKU(t *testing.T) {
	api := newFakeAPI()
	api.products = []entity.Product{
		{ID: 1, Name: "Tornillo 6mm", SKU: "TOR-6", Quantity: 1, MinStock: 5},
		{ID: 2, Name: "Tuerca", SKU: "TUE-1", Quantity: 50, MinStock: 5},
		{ID: 3, Name: "Arandela", SKU: "xtor-9", Quantity: 0},
	}
	uc := NewProductUseCase()

	l, err := uc.List(context.Background(), api, "  tor ")
	require.NoError(t, err)
	assert.Equal(t, "tor", l.Search)
	require.Len(t, l.Items, 2)
	assert.Equal(t, int64(1), l.Items[0].ID)
	assert.Equal(t, int64(3), l.Items[1].ID)
	assert.Equal(t, 2, l.LowStock)

	l, err = uc.List(context.Background(), api, "")
	require.NoError(t, err)
	assert.Len(t, l.Items, 3)
}

func TestProducts_CreateValidaAntesDeLlamar(t *testing.T) {
	api := newFakeAPI()
	uc := NewProductUseCase()

	_, err := uc.Create(context.Background(), api, dto.ProductInput{Name: " ", SKU: "A", Quantity: -1})
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Fields, "name")
	assert.Contains(t, fe.Fields, "quantity")
	assert.Equal(t, 0, api.count("CreateProduct"))

	p, err := uc.Create(context.Background(), api, dto.ProductInput{Name: " Clavo ", SKU: "CL-1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "Clavo", p.Name)
}

func TestProducts_AdjustStock(t *testing.T) {
	api := newFakeAPI()
	uc := NewProductUseCase()

	err := uc.AdjustStock(context.Background(), api, 1, dto.AdjustStockRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, api.count("AdjustStock"))

	require.NoError(t, uc.AdjustStock(context.Background(), api, 1, dto.AdjustStockRequest{QuantityChange: -2}))
	assert.Equal(t, entity.ReasonManualAdjustment, api.lastAdjust.Reason)
	assert.Equal(t, -2, api.lastAdjust.QuantityChange)
}

func TestProducts_Detail(t *testing.T) {
	api := newFakeAPI()
	api.products = []entity.Product{{ID: 4, Name: "Clavo"}}

	d, err := NewProductUseCase().Detail(context.Background(), api, 4)
	require.NoError(t, err)
	assert.Equal(t, "Clavo", d.Product.Name)
	assert.Len(t, d.Movements, 1)
}

func TestScannerLookup(t *testing.T) {
	r, err := ScannerLookup(" 7791234 5\r\n")
	require.NoError(t, err)
	assert.Equal(t, "7791234 5", r.Code)
	assert.Equal(t, "/products?search=7791234+5", r.Redirect)

	_, err = ScannerLookup("  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPartners_Validacion(t *testing.T) {
	api := newFakeAPI()
	uc := NewPartnerUseCase()

	_, err := uc.CreateCustomer(context.Background(), api, dto.CustomerInput{Name: "A", Email: "no-es-email"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, api.count("CreateCustomer"))

	c, err := uc.CreateCustomer(context.Background(), api, dto.CustomerInput{Name: " ACME "})
	require.NoError(t, err)
	assert.Equal(t, "ACME", c.Name)

	err = uc.UpdateSupplier(context.Background(), api, 1, dto.SupplierInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	require.NoError(t, uc.UpdateSupplier(context.Background(), api, 1, dto.SupplierInput{Name: "Prov", Email: "p@q.com"}))
	assert.Equal(t, 1, api.count("UpdateSupplier"))
}

func TestDashboard_LoadParalelo(t *testing.T) {
	api := newFakeAPI()
	api.metrics = &entity.DashboardMetrics{TotalProducts: 3}
	api.kpis = &entity.DashboardKPIs{CurrentMonthSales: decimal.NewFromInt(1200)}
	api.charts = &entity.ChartData{TopSellingProducts: []entity.TopSellingProduct{{ProductName: "A", TotalSold: 4}}}

	v, err := NewDashboardUseCase().Load(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Metrics.TotalProducts)
	assert.True(t, v.KPIs.CurrentMonthSales.Equal(decimal.NewFromInt(1200)))
	assert.Len(t, v.Charts.TopSellingProducts, 1)
}

func TestDashboard_ErrorPropaga(t *testing.T) {
	api := newFakeAPI()
	api.dashErr = fmt.Errorf("api: %w", domain.ErrNetwork)
	api.kpis = &entity.DashboardKPIs{}
	api.charts = &entity.ChartData{}

	_, err := NewDashboardUseCase().Load(context.Background(), api)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestFormError_MensajeOrdenado(t *testing.T) {
	err := &FormError{Fields: map[string]string{"b": "segundo", "a": "primero"}}
	assert.Equal(t, "primero; segundo", err.Error())
}
