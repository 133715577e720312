package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder cabecera de una orden de compra ya creada en la API.
type PurchaseOrder struct {
	ID           int64      `json:"id"`
	SupplierID   NullInt64  `json:"supplier_id"`
	SupplierName string     `json:"supplier_name,omitempty"`
	OrderDate    *time.Time `json:"order_date,omitempty"`
	Status       string     `json:"status"`
	UserID       int64      `json:"user_id"`
}

// PurchaseOrderItem línea persistida con su costo unitario.
type PurchaseOrderItem struct {
	ID              int64           `json:"id"`
	PurchaseOrderID int64           `json:"purchase_order_id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// Subtotal cantidad × costo unitario.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseOrderDetail respuesta de GET /purchase-orders/{id} y de la creación.
type PurchaseOrderDetail struct {
	Order PurchaseOrder       `json:"order"`
	Items []PurchaseOrderItem `json:"items"`
}

// Total suma de subtotales de las líneas.
func (d PurchaseOrderDetail) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
