package dto

// UpdateStatusRequest cuerpo de PUT /purchase-orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// SalesItemForm formulario "agregar producto" del constructor de ventas.
type SalesItemForm struct {
	CustomerID int64 `form:"customer_id"`
	ProductID  int64 `form:"product_id"`
	Quantity   int   `form:"quantity"`
}

// PurchaseItemForm formulario "agregar producto" del constructor de compras.
// UnitCost llega como texto para parsearlo a decimal sin pasar por float.
type PurchaseItemForm struct {
	SupplierID int64  `form:"supplier_id"`
	ProductID  int64  `form:"product_id"`
	Quantity   int    `form:"quantity"`
	UnitCost   string `form:"unit_cost"`
}
