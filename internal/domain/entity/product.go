package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product dato de referencia leído de la API.
// Quantity es el stock disponible al momento de la lectura (snapshot, no garantía).
type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Description *string          `json:"description,omitempty"`
	Quantity    int              `json:"quantity"`
	MinStock    int              `json:"min_stock"`
	Price       *decimal.Decimal `json:"price,omitempty"` // no todas las versiones de la API lo exponen
	UserID      int64            `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
}

// LowStock indica si el stock está en o por debajo del mínimo.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
