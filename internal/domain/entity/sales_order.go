package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden que maneja la API.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus indica si status pertenece al conjunto que acepta la API.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// SalesOrder cabecera de una orden de venta ya creada en la API.
type SalesOrder struct {
	ID           int64       `json:"id"`
	CustomerID   NullInt64   `json:"customer_id"`
	CustomerName string      `json:"customer_name,omitempty"`
	OrderDate    time.Time   `json:"order_date"`
	Status       string      `json:"status"`
	TotalAmount  NullDecimal `json:"total_amount"`
	UserID       int64       `json:"user_id"`
}

// SalesOrderItem línea persistida; UnitPrice lo fija la API al crear la orden.
type SalesOrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal cantidad × precio unitario.
func (i SalesOrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SalesOrderDetail respuesta de GET /sales-orders/{id} y de la creación.
type SalesOrderDetail struct {
	Order SalesOrder       `json:"order"`
	Items []SalesOrderItem `json:"items"`
}

// Total suma de subtotales de las líneas (independiente de total_amount).
func (d SalesOrderDetail) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
