package order

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-web/internal/domain"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testCatalog() *Catalog {
	return NewCatalog([]entity.Product{
		{ID: 7, Name: "Tornillo", SKU: "T-7", Quantity: 10, Price: price("2.50")},
		{ID: 8, Name: "Tuerca", SKU: "T-8", Quantity: 5, Price: price("1.00")},
		{ID: 9, Name: "Arandela", SKU: "A-9", Quantity: 100},
	})
}

func add(t *testing.T, d *SalesDraft, c *Catalog, productID int64, qty int) error {
	t.Helper()
	d.SelectProduct(productID)
	d.SetQuantity(qty)
	return d.AddItem(c)
}

func TestSalesDraft_ReagregarSumaCantidad(t *testing.T) {
	c := testCatalog()
	d := NewSalesDraft()

	require.NoError(t, add(t, d, c, 7, 2))
	require.NoError(t, add(t, d, c, 7, 3))

	assert.Equal(t, []SalesLine{{ProductID: 7, Quantity: 5}}, d.Lines())
}

func TestSalesDraft_SeleccionSeReiniciaTrasAgregar(t *testing.T) {
	d := NewSalesDraft()
	require.NoError(t, add(t, d, testCatalog(), 8, 2))
	assert.Equal(t, int64(0), d.ProductID)
	assert.Equal(t, 1, d.Quantity)
}

func TestSalesDraft_StockInsuficienteNoCambiaBorrador(t *testing.T) {
	c := testCatalog()
	d := NewSalesDraft()

	err := add(t, d, c, 8, 6)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity", vErr.Field)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, d.Lines())
	assert.Equal(t, int64(8), d.ProductID, "la selección se conserva para corregirla")
}

func TestSalesDraft_StockSeControlaSobreCantidadSumada(t *testing.T) {
	c := testCatalog()
	d := NewSalesDraft()

	require.NoError(t, add(t, d, c, 8, 3))
	err := add(t, d, c, 8, 3)
	require.Error(t, err)
	assert.Equal(t, []SalesLine{{ProductID: 8, Quantity: 3}}, d.Lines())

	require.NoError(t, add(t, d, c, 8, 2))
	assert.Equal(t, []SalesLine{{ProductID: 8, Quantity: 5}}, d.Lines())
}

func TestSalesDraft_CantidadEnormeNoDesborda(t *testing.T) {
	c := testCatalog()
	d := NewSalesDraft()

	require.NoError(t, add(t, d, c, 8, 1))
	err := add(t, d, c, 8, math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []SalesLine{{ProductID: 8, Quantity: 1}}, d.Lines())
}

func TestSalesDraft_Rechazos(t *testing.T) {
	c := testCatalog()
	cases := []struct {
		name      string
		productID int64
		qty       int
		field     string
	}{
		{"sin producto", 0, 1, "product_id"},
		{"cantidad cero", 7, 0, "quantity"},
		{"cantidad negativa", 7, -2, "quantity"},
		{"producto desconocido", 99, 1, "product_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewSalesDraft()
			err := add(t, d, c, tc.productID, tc.qty)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Empty(t, d.Lines())
		})
	}
}

func TestSalesDraft_RemoveItemQuitaSoloEsaLinea(t *testing.T) {
	c := testCatalog()
	d := NewSalesDraft()
	require.NoError(t, add(t, d, c, 7, 1))
	require.NoError(t, add(t, d, c, 8, 2))
	require.NoError(t, add(t, d, c, 9, 3))

	d.RemoveItem(8)
	assert.Equal(t, []SalesLine{{ProductID: 7, Quantity: 1}, {ProductID: 9, Quantity: 3}}, d.Lines())

	d.RemoveItem(42)
	assert.Len(t, d.Lines(), 2)
}

func TestSalesDraft_TotalUsaPrecioUnitario(t *testing.T) {
	c := testCatalog()
	d := NewSalesDraft()
	require.NoError(t, add(t, d, c, 7, 4))
	require.NoError(t, add(t, d, c, 8, 1))

	total, known := d.Total(c)
	assert.True(t, known)
	assert.True(t, decimal.RequireFromString("11").Equal(total), "4×2.50 + 1×1.00, nunca cantidad × stock")

	require.NoError(t, add(t, d, c, 9, 1))
	_, known = d.Total(c)
	assert.False(t, known, "producto sin precio: total desconocido")
}

func TestSalesDraft_PayloadRequiereClienteYLineas(t *testing.T) {
	c := testCatalog()
	d := NewSalesDraft()

	_, err := d.Payload()
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	require.NoError(t, add(t, d, c, 7, 2))
	_, err = d.Payload()
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "customer_id", errs[0].Field)

	d.SelectCustomer(3)
	p, err := d.Payload()
	require.NoError(t, err)
	assert.Equal(t, SalesPayload{CustomerID: 3, Items: []SalesPayloadItem{{ProductID: 7, Quantity: 2}}}, p)
}
