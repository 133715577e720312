package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-web/internal/application/ports"
)

func TestGenerateOrderPDF(t *testing.T) {
	g := NewMarotoOrderPDF("inventario-web")

	b, err := g.GenerateOrderPDF(ports.OrderPDFData{
		Title:        "Orden de compra",
		OrderID:      12,
		Date:         "05/03/2024",
		Counterparty: "Proveedora SA",
		Status:       "Pendiente",
		Lines: []ports.OrderPDFLine{
			{ProductName: "Tornillo", SKU: "TOR-7", Quantity: "10", UnitAmount: "$ 2,50", Subtotal: "$ 25,00"},
		},
		Total: "$ 25,00",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateOrderPDF_SinLineas(t *testing.T) {
	b, err := NewMarotoOrderPDF("x").GenerateOrderPDF(ports.OrderPDFData{Title: "Orden de venta", OrderID: 1, Total: "$ 0,00"})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestOrderReference(t *testing.T) {
	assert.Equal(t, "V-000042", orderReference(ports.OrderPDFData{Title: "Orden de venta", OrderID: 42}))
	assert.Equal(t, "C-000007", orderReference(ports.OrderPDFData{Title: "Orden de compra", OrderID: 7}))
}
