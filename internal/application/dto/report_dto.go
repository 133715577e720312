package dto

// ReportKind recurso exportable.
type ReportKind string

const (
	ReportProducts       ReportKind = "products"
	ReportCustomers      ReportKind = "customers"
	ReportSuppliers      ReportKind = "suppliers"
	ReportSalesOrders    ReportKind = "sales-orders"
	ReportPurchaseOrders ReportKind = "purchase-orders"
)

var reportFilenames = map[ReportKind]string{
	ReportProducts:       "productos.xlsx",
	ReportCustomers:      "clientes.xlsx",
	ReportSuppliers:      "proveedores.xlsx",
	ReportSalesOrders:    "ventas.xlsx",
	ReportPurchaseOrders: "compras.xlsx",
}

// Filename nombre fijo del archivo descargado; ok=false si el tipo no es exportable.
func (k ReportKind) Filename() (string, bool) {
	name, ok := reportFilenames[k]
	return name, ok
}

// Emailable indica si la API acepta pedir el reporte por email.
func (k ReportKind) Emailable() bool {
	switch k {
	case ReportProducts, ReportCustomers, ReportSuppliers:
		return true
	}
	return false
}

// Label nombre legible.
func (k ReportKind) Label() string {
	switch k {
	case ReportProducts:
		return "Productos"
	case ReportCustomers:
		return "Clientes"
	case ReportSuppliers:
		return "Proveedores"
	case ReportSalesOrders:
		return "Órdenes de venta"
	case ReportPurchaseOrders:
		return "Órdenes de compra"
	}
	return string(k)
}

// ReportKinds todos los tipos, en el orden de la página de reportes.
func ReportKinds() []ReportKind {
	return []ReportKind{ReportProducts, ReportCustomers, ReportSuppliers, ReportSalesOrders, ReportPurchaseOrders}
}
