package ports

// OrderPDFData todo lo necesario para imprimir una orden sin volver a llamar a la API.
// Los importes llegan ya formateados.
type OrderPDFData struct {
	Title        string // "Orden de venta" / "Orden de compra"
	OrderID      int64
	Date         string
	Counterparty string // cliente o proveedor
	Status       string
	Lines        []OrderPDFLine
	Total        string
}

// OrderPDFLine una línea con el nombre de producto ya resuelto.
type OrderPDFLine struct {
	ProductName string
	SKU         string
	Quantity    string
	UnitAmount  string
	Subtotal    string
}

// OrderPDFGenerator puerto de salida para renderizar una orden a PDF.
type OrderPDFGenerator interface {
	GenerateOrderPDF(data OrderPDFData) ([]byte, error)
}
