package order

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// Catalog snapshot de productos leído al entrar al constructor de órdenes.
// El stock es el de ese momento; la API vuelve a validar al crear la orden.
type Catalog struct {
	products map[int64]entity.Product
	order    []int64
}

// NewCatalog indexa los productos por id conservando el orden recibido.
func NewCatalog(products []entity.Product) *Catalog {
	c := &Catalog{products: make(map[int64]entity.Product, len(products))}
	for _, p := range products {
		if _, dup := c.products[p.ID]; !dup {
			c.order = append(c.order, p.ID)
		}
		c.products[p.ID] = p
	}
	return c
}

// Product busca por id.
func (c *Catalog) Product(id int64) (entity.Product, bool) {
	if c == nil {
		return entity.Product{}, false
	}
	p, ok := c.products[id]
	return p, ok
}

// Products lista en el orden original (para el <select>).
func (c *Catalog) Products() []entity.Product {
	if c == nil {
		return nil
	}
	out := make([]entity.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}

// UnitPrice precio unitario si la API lo expone.
func (c *Catalog) UnitPrice(id int64) (decimal.Decimal, bool) {
	p, ok := c.Product(id)
	if !ok || p.Price == nil {
		return decimal.Zero, false
	}
	return *p.Price, true
}
