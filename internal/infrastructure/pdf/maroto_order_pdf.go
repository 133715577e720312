// Package pdf imprime órdenes de venta y de compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° orden       │  Fecha + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRAPARTE: cliente o proveedor                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | SKU | Unitario | Subtotal          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER: código de barras de la orden                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-web/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoOrderPDF implementa ports.OrderPDFGenerator usando Maroto v2.
type MarotoOrderPDF struct {
	author string
}

var _ ports.OrderPDFGenerator = (*MarotoOrderPDF)(nil)

// NewMarotoOrderPDF construye el generador; author va a los metadatos del documento.
func NewMarotoOrderPDF(author string) *MarotoOrderPDF { return &MarotoOrderPDF{author: author} }

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoOrderPDF) GenerateOrderPDF(data ports.OrderPDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s #%d", data.Title, data.OrderID), true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(counterpartyRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(data.Title))
	if len(data.Lines) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Sin productos", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		)))
	}
	m.AddRows(tableDetailRows(data.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data.Total))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data ports.OrderPDFData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(strings.ToUpper(data.Title), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", data.OrderID), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+nonEmpty(data.Date, "—"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Estado: "+nonEmpty(data.Status, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

func counterpartyRow(data ports.OrderPDFData) core.Row {
	label := "CLIENTE"
	if strings.Contains(strings.ToLower(data.Title), "compra") {
		label = "PROVEEDOR"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.Counterparty, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
	)
}

func tableHeaderRow(title string) core.Row {
	unit := "Precio Unit."
	if strings.Contains(strings.ToLower(title), "compra") {
		unit = "Costo Unit."
	}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("SKU", 2, align.Left),
		h(unit, 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableDetailRows una fila por línea.
func tableDetailRows(lines []ports.OrderPDFLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(l.Quantity, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(l.SKU, "—"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(l.UnitAmount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.Subtotal, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(total, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow código de barras con la referencia de la orden, legible por el escáner.
func footerRow(data ports.OrderPDFData) core.Row {
	return row.New(20).Add(
		col.New(4).Add(code.NewBar(orderReference(data), props.Barcode{Percent: 90})),
		col.New(8).Add(text.New("Documento interno de inventario. No válido como factura.", props.Text{
			Size: 7, Top: 8, Left: 3, Color: colorGray,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// orderReference "V-000123" para ventas, "C-000123" para compras.
func orderReference(data ports.OrderPDFData) string {
	prefix := "V"
	if strings.Contains(strings.ToLower(data.Title), "compra") {
		prefix = "C"
	}
	return fmt.Sprintf("%s-%06d", prefix, data.OrderID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
