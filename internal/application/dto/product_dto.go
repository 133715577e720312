package dto

// ProductInput alta/edición de producto.
type ProductInput struct {
	Name        string `json:"name" form:"name"`
	SKU         string `json:"sku" form:"sku"`
	Description string `json:"description" form:"description"`
	Quantity    int    `json:"quantity" form:"quantity"`
}

// AdjustStockRequest cuerpo de POST /products/{id}/adjust-stock.
type AdjustStockRequest struct {
	QuantityChange int    `json:"quantity_change" form:"quantity_change"`
	Reason         string `json:"reason" form:"reason"`
}
