package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// SalesLine línea del borrador, única por producto.
type SalesLine struct {
	ProductID int64
	Quantity  int
}

// SalesDraft estado del constructor de órdenes de venta.
type SalesDraft struct {
	CustomerID int64
	ProductID  int64
	Quantity   int

	// Referencias leídas al entrar al constructor; se descartan junto con el borrador.
	Customers []entity.Customer
	Catalog   *Catalog

	lines []SalesLine
}

// NewSalesDraft borrador vacío con cantidad inicial 1.
func NewSalesDraft() *SalesDraft {
	return &SalesDraft{Quantity: 1}
}

func (d *SalesDraft) SelectCustomer(id int64) { d.CustomerID = id }
func (d *SalesDraft) SelectProduct(id int64)  { d.ProductID = id }
func (d *SalesDraft) SetQuantity(q int)       { d.Quantity = q }

// AddItem agrega la selección actual. Si el producto ya está en el borrador se suman las
// cantidades. El tope de stock se aplica a la cantidad resultante de la suma, así ninguna
// línea supera el snapshot. Ante cualquier rechazo el borrador no cambia.
func (d *SalesDraft) AddItem(catalog *Catalog) error {
	if d.ProductID == 0 {
		return invalid("product_id", "Seleccioná un producto")
	}
	if d.Quantity <= 0 {
		return invalid("quantity", "La cantidad debe ser mayor a cero")
	}
	p, ok := catalog.Product(d.ProductID)
	if !ok {
		return invalid("product_id", "El producto seleccionado no existe")
	}

	idx := d.indexOf(d.ProductID)
	existing := 0
	if idx >= 0 {
		existing = d.lines[idx].Quantity
	}
	// Se compara contra el stock restante para no sumar antes de controlar.
	if d.Quantity > p.Quantity-existing {
		return invalid("quantity", fmt.Sprintf("Stock insuficiente para %s: disponible %d, en la orden %d", p.Name, p.Quantity, existing))
	}
	merged := existing + d.Quantity

	if idx >= 0 {
		d.lines[idx].Quantity = merged
	} else {
		d.lines = append(d.lines, SalesLine{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	d.ProductID = 0
	d.Quantity = 1
	return nil
}

// RemoveItem quita exactamente la línea de ese producto.
func (d *SalesDraft) RemoveItem(productID int64) {
	if idx := d.indexOf(productID); idx >= 0 {
		d.lines = append(d.lines[:idx], d.lines[idx+1:]...)
	}
}

// Lines copia de las líneas en orden de inserción.
func (d *SalesDraft) Lines() []SalesLine {
	out := make([]SalesLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Total suma cantidad × precio unitario. known=false si algún producto no tiene precio
// conocido; nunca se usa el stock como valor.
func (d *SalesDraft) Total(catalog *Catalog) (total decimal.Decimal, known bool) {
	total = decimal.Zero
	known = true
	for _, l := range d.lines {
		price, ok := catalog.UnitPrice(l.ProductID)
		if !ok {
			known = false
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total, known
}

// Validate condiciones previas al submit: cliente elegido y al menos una línea.
func (d *SalesDraft) Validate() error {
	var errs ValidationErrors
	if d.CustomerID == 0 {
		errs = append(errs, invalid("customer_id", "Seleccioná un cliente"))
	}
	if len(d.lines) == 0 {
		errs = append(errs, invalid("items", "Agregá al menos un producto"))
	}
	return errs.orNil()
}

// SalesPayload cuerpo de POST /sales-orders.
type SalesPayload struct {
	CustomerID int64              `json:"customer_id"`
	Items      []SalesPayloadItem `json:"items"`
}

// SalesPayloadItem una línea normalizada (id + cantidad).
type SalesPayloadItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Payload valida y arma el cuerpo a enviar.
func (d *SalesDraft) Payload() (SalesPayload, error) {
	if err := d.Validate(); err != nil {
		return SalesPayload{}, err
	}
	p := SalesPayload{CustomerID: d.CustomerID, Items: make([]SalesPayloadItem, 0, len(d.lines))}
	for _, l := range d.lines {
		p.Items = append(p.Items, SalesPayloadItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return p, nil
}

func (d *SalesDraft) indexOf(productID int64) int {
	for i, l := range d.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
