package order

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// PurchaseLine línea del borrador de compra con su costo unitario.
type PurchaseLine struct {
	ProductID int64
	Quantity  int
	UnitCost  decimal.Decimal
}

// MaxQuantity tope de cantidad por línea; la API guarda la cantidad en un int de 32 bits.
const MaxQuantity = math.MaxInt32

// PurchaseDraft estado del constructor de órdenes de compra.
// No hay tope de stock: comprar aumenta el stock.
type PurchaseDraft struct {
	SupplierID int64
	ProductID  int64
	Quantity   int
	UnitCost   decimal.Decimal

	Suppliers []entity.Supplier
	Catalog   *Catalog

	lines []PurchaseLine
}

// NewPurchaseDraft borrador vacío con cantidad inicial 1.
func NewPurchaseDraft() *PurchaseDraft {
	return &PurchaseDraft{Quantity: 1, UnitCost: decimal.Zero}
}

func (d *PurchaseDraft) SelectSupplier(id int64)       { d.SupplierID = id }
func (d *PurchaseDraft) SelectProduct(id int64)        { d.ProductID = id }
func (d *PurchaseDraft) SetQuantity(q int)             { d.Quantity = q }
func (d *PurchaseDraft) SetUnitCost(c decimal.Decimal) { d.UnitCost = c }

// AddItem suma la cantidad si el producto ya está y sobrescribe el costo unitario.
func (d *PurchaseDraft) AddItem(catalog *Catalog) error {
	if d.ProductID == 0 {
		return invalid("product_id", "Seleccioná un producto")
	}
	if d.Quantity <= 0 {
		return invalid("quantity", "La cantidad debe ser mayor a cero")
	}
	if d.UnitCost.IsNegative() {
		return invalid("unit_cost", "El costo unitario no puede ser negativo")
	}
	if _, ok := catalog.Product(d.ProductID); !ok {
		return invalid("product_id", "El producto seleccionado no existe")
	}

	idx := d.indexOf(d.ProductID)
	if d.Quantity > MaxQuantity || (idx >= 0 && d.lines[idx].Quantity > MaxQuantity-d.Quantity) {
		return invalid("quantity", fmt.Sprintf("La cantidad por línea no puede superar %d", MaxQuantity))
	}

	if idx >= 0 {
		d.lines[idx].Quantity += d.Quantity
		d.lines[idx].UnitCost = d.UnitCost
	} else {
		d.lines = append(d.lines, PurchaseLine{ProductID: d.ProductID, Quantity: d.Quantity, UnitCost: d.UnitCost})
	}
	d.ProductID = 0
	d.Quantity = 1
	d.UnitCost = decimal.Zero
	return nil
}

// RemoveItem quita exactamente la línea de ese producto.
func (d *PurchaseDraft) RemoveItem(productID int64) {
	if idx := d.indexOf(productID); idx >= 0 {
		d.lines = append(d.lines[:idx], d.lines[idx+1:]...)
	}
}

// Lines copia de las líneas en orden de inserción.
func (d *PurchaseDraft) Lines() []PurchaseLine {
	out := make([]PurchaseLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Total suma cantidad × costo unitario.
func (d *PurchaseDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Validate condiciones previas al submit: proveedor elegido y al menos una línea.
func (d *PurchaseDraft) Validate() error {
	var errs ValidationErrors
	if d.SupplierID == 0 {
		errs = append(errs, invalid("supplier_id", "Seleccioná un proveedor"))
	}
	if len(d.lines) == 0 {
		errs = append(errs, invalid("items", "Agregá al menos un producto"))
	}
	return errs.orNil()
}

// PurchasePayload cuerpo de POST /purchase-orders.
type PurchasePayload struct {
	SupplierID int64                 `json:"supplier_id"`
	Items      []PurchasePayloadItem `json:"items"`
}

// PurchasePayloadItem una línea normalizada con costo.
type PurchasePayloadItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// MarshalJSON escribe unit_cost como número JSON; la API lo decodifica como float.
func (i PurchasePayloadItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProductID int64       `json:"product_id"`
		Quantity  int         `json:"quantity"`
		UnitCost  json.Number `json:"unit_cost"`
	}{i.ProductID, i.Quantity, json.Number(i.UnitCost.String())})
}

// Payload valida y arma el cuerpo a enviar.
func (d *PurchaseDraft) Payload() (PurchasePayload, error) {
	if err := d.Validate(); err != nil {
		return PurchasePayload{}, err
	}
	p := PurchasePayload{SupplierID: d.SupplierID, Items: make([]PurchasePayloadItem, 0, len(d.lines))}
	for _, l := range d.lines {
		p.Items = append(p.Items, PurchasePayloadItem{ProductID: l.ProductID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	return p, nil
}

func (d *PurchaseDraft) indexOf(productID int64) int {
	for i, l := range d.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
