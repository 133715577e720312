// Package money formatea importes para las vistas y los PDF con separadores es-AR.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

// Format devuelve el importe con dos decimales y separador de miles, ej. "$ 12.345,50".
func Format(d decimal.Decimal) string {
	return "$ " + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Quantity formatea cantidades enteras con separador de miles.
func Quantity(n int) string {
	return printer.Sprintf("%d", n)
}
