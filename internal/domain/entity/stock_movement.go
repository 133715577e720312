package entity

import "time"

// Motivos de movimiento que usa la API.
const (
	ReasonManualAdjustment = "MANUAL_ADJUSTMENT"
)

// StockMovement historial de movimientos de un producto.
type StockMovement struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	QuantityChange int       `json:"quantity_change"`
	Reason         string    `json:"reason"`
	ReferenceID    string    `json:"reference_id"`
	UserID         int64     `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
