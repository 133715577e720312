package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/domain"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
	"github.com/jhoicas/Inventario-web/pkg/logger"
	"github.com/jhoicas/Inventario-web/pkg/money"
)

// OrderUseCase constructores de órdenes de venta/compra, detalle y exportación a PDF.
// Los borradores viven en order.Drafts; las referencias (clientes, proveedores, productos)
// se leen una vez al entrar al constructor y quedan guardadas en el borrador.
type OrderUseCase struct {
	drafts *order.Drafts
	pdf    ports.OrderPDFGenerator
	log    *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(drafts *order.Drafts, pdf ports.OrderPDFGenerator, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{drafts: drafts, pdf: pdf, log: log.Child("orders")}
}

// Drafts registro de borradores (lo usa el middleware de navegación).
func (uc *OrderUseCase) Drafts() *order.Drafts { return uc.drafts }

// ── Vistas del constructor ──

// BuilderLine una línea del borrador con el producto resuelto.
// UnitAmount es el precio (venta) o el costo (compra); nil si no se conoce.
type BuilderLine struct {
	ProductID  int64
	Name       string
	SKU        string
	Quantity   int
	UnitAmount *decimal.Decimal
	Subtotal   *decimal.Decimal
}

// SalesBuilderView estado del constructor de ventas para renderizar.
type SalesBuilderView struct {
	Customers  []entity.Customer
	Products   []entity.Product
	CustomerID int64
	ProductID  int64
	Quantity   int
	Lines      []BuilderLine
	Total      decimal.Decimal
	TotalKnown bool
}

// PurchaseBuilderView estado del constructor de compras para renderizar.
type PurchaseBuilderView struct {
	Suppliers  []entity.Supplier
	Products   []entity.Product
	SupplierID int64
	ProductID  int64
	Quantity   int
	UnitCost   decimal.Decimal
	Lines      []BuilderLine
	Total      decimal.Decimal
}

func salesView(d *order.SalesDraft) *SalesBuilderView {
	v := &SalesBuilderView{
		Customers:  d.Customers,
		Products:   d.Catalog.Products(),
		CustomerID: d.CustomerID,
		ProductID:  d.ProductID,
		Quantity:   d.Quantity,
	}
	for _, l := range d.Lines() {
		p, _ := d.Catalog.Product(l.ProductID)
		line := BuilderLine{ProductID: l.ProductID, Name: p.Name, SKU: p.SKU, Quantity: l.Quantity}
		if price, ok := d.Catalog.UnitPrice(l.ProductID); ok {
			sub := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			line.UnitAmount, line.Subtotal = &price, &sub
		}
		v.Lines = append(v.Lines, line)
	}
	v.Total, v.TotalKnown = d.Total(d.Catalog)
	return v
}

func purchaseView(d *order.PurchaseDraft) *PurchaseBuilderView {
	v := &PurchaseBuilderView{
		Suppliers:  d.Suppliers,
		Products:   d.Catalog.Products(),
		SupplierID: d.SupplierID,
		ProductID:  d.ProductID,
		Quantity:   d.Quantity,
		UnitCost:   d.UnitCost,
		Total:      d.Total(),
	}
	for _, l := range d.Lines() {
		p, _ := d.Catalog.Product(l.ProductID)
		cost := l.UnitCost
		sub := cost.Mul(decimal.NewFromInt(int64(l.Quantity)))
		v.Lines = append(v.Lines, BuilderLine{
			ProductID: l.ProductID, Name: p.Name, SKU: p.SKU, Quantity: l.Quantity,
			UnitAmount: &cost, Subtotal: &sub,
		})
	}
	return v
}

// ── Referencias ──

// loadSalesRefs lee clientes y productos en paralelo. Si una falla se cancela la otra.
func loadSalesRefs(ctx context.Context, api ports.InventoryAPI) ([]entity.Customer, *order.Catalog, error) {
	var (
		customers []entity.Customer
		products  []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = api.ListCustomers(gctx)
		if err != nil {
			return fmt.Errorf("órdenes: clientes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = api.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("órdenes: productos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return customers, order.NewCatalog(products), nil
}

func loadPurchaseRefs(ctx context.Context, api ports.InventoryAPI) ([]entity.Supplier, *order.Catalog, error) {
	var (
		suppliers []entity.Supplier
		products  []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		suppliers, err = api.ListSuppliers(gctx)
		if err != nil {
			return fmt.Errorf("órdenes: proveedores: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = api.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("órdenes: productos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return suppliers, order.NewCatalog(products), nil
}

// ── Ventas ──

// StartSales entra al constructor: lee referencias y crea un borrador nuevo.
// Si la lectura falla no queda borrador.
func (uc *OrderUseCase) StartSales(ctx context.Context, api ports.InventoryAPI, scope string) (*SalesBuilderView, error) {
	customers, catalog, err := loadSalesRefs(ctx, api)
	if err != nil {
		uc.drafts.Sales.Discard(scope)
		return nil, err
	}
	var view *SalesBuilderView
	uc.drafts.Sales.Start(scope, func(d *order.SalesDraft) {
		d.Customers, d.Catalog = customers, catalog
		view = salesView(d)
	})
	return view, nil
}

// SalesBuilder estado actual del borrador de venta.
func (uc *OrderUseCase) SalesBuilder(scope string) (*SalesBuilderView, error) {
	var view *SalesBuilderView
	err := uc.drafts.Sales.Update(scope, func(d *order.SalesDraft) error {
		view = salesView(d)
		return nil
	})
	return view, err
}

// AddSalesItem aplica la selección del formulario y agrega la línea.
// Devuelve siempre la vista (para re-renderizar) junto al error de validación si lo hubo.
func (uc *OrderUseCase) AddSalesItem(scope string, form dto.SalesItemForm) (*SalesBuilderView, error) {
	var (
		view   *SalesBuilderView
		addErr error
	)
	err := uc.drafts.Sales.Update(scope, func(d *order.SalesDraft) error {
		d.SelectCustomer(form.CustomerID)
		d.SelectProduct(form.ProductID)
		d.SetQuantity(form.Quantity)
		addErr = d.AddItem(d.Catalog)
		view = salesView(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, addErr
}

// RemoveSalesItem quita la línea del producto.
func (uc *OrderUseCase) RemoveSalesItem(scope string, productID int64) (*SalesBuilderView, error) {
	var view *SalesBuilderView
	err := uc.drafts.Sales.Update(scope, func(d *order.SalesDraft) error {
		d.RemoveItem(productID)
		view = salesView(d)
		return nil
	})
	return view, err
}

// SubmitSales valida localmente y, solo si pasa, crea la orden en la API.
// Éxito: el borrador se descarta. Error de la API: el borrador queda intacto.
func (uc *OrderUseCase) SubmitSales(ctx context.Context, api ports.OrderAPI, scope string, customerID int64) (*entity.SalesOrderDetail, *SalesBuilderView, error) {
	var (
		payload order.SalesPayload
		view    *SalesBuilderView
	)
	err := uc.drafts.Sales.Update(scope, func(d *order.SalesDraft) error {
		if customerID != 0 {
			d.SelectCustomer(customerID)
		}
		view = salesView(d)
		var err error
		payload, err = d.Payload()
		return err
	})
	if err != nil {
		return nil, view, err
	}

	// fuera del lock: la llamada de red no bloquea otros requests del mismo navegador
	created, err := api.CreateSalesOrder(ctx, payload)
	if err != nil {
		uc.log.Warn().Err(err).Int64("customer_id", payload.CustomerID).Int("items", len(payload.Items)).Msg("crear orden de venta")
		return nil, view, err
	}
	uc.drafts.Sales.Discard(scope)
	uc.log.Info().Int64("order_id", created.Order.ID).Int("items", len(payload.Items)).Msg("orden de venta creada")
	return created, nil, nil
}

// ── Compras ──

// StartPurchase entra al constructor de compras.
func (uc *OrderUseCase) StartPurchase(ctx context.Context, api ports.InventoryAPI, scope string) (*PurchaseBuilderView, error) {
	suppliers, catalog, err := loadPurchaseRefs(ctx, api)
	if err != nil {
		uc.drafts.Purchase.Discard(scope)
		return nil, err
	}
	var view *PurchaseBuilderView
	uc.drafts.Purchase.Start(scope, func(d *order.PurchaseDraft) {
		d.Suppliers, d.Catalog = suppliers, catalog
		view = purchaseView(d)
	})
	return view, nil
}

// PurchaseBuilder estado actual del borrador de compra.
func (uc *OrderUseCase) PurchaseBuilder(scope string) (*PurchaseBuilderView, error) {
	var view *PurchaseBuilderView
	err := uc.drafts.Purchase.Update(scope, func(d *order.PurchaseDraft) error {
		view = purchaseView(d)
		return nil
	})
	return view, err
}

// ParseUnitCost interpreta el costo del formulario; acepta coma decimal. Vacío = 0.
func ParseUnitCost(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FormError{Fields: map[string]string{"unit_cost": "Costo unitario inválido"}}
	}
	return d, nil
}

// AddPurchaseItem aplica la selección del formulario y agrega la línea.
func (uc *OrderUseCase) AddPurchaseItem(scope string, form dto.PurchaseItemForm) (*PurchaseBuilderView, error) {
	cost, costErr := ParseUnitCost(form.UnitCost)
	var (
		view   *PurchaseBuilderView
		addErr error
	)
	err := uc.drafts.Purchase.Update(scope, func(d *order.PurchaseDraft) error {
		d.SelectSupplier(form.SupplierID)
		d.SelectProduct(form.ProductID)
		d.SetQuantity(form.Quantity)
		if costErr != nil {
			addErr = costErr
		} else {
			d.SetUnitCost(cost)
			addErr = d.AddItem(d.Catalog)
		}
		view = purchaseView(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, addErr
}

// RemovePurchaseItem quita la línea del producto.
func (uc *OrderUseCase) RemovePurchaseItem(scope string, productID int64) (*PurchaseBuilderView, error) {
	var view *PurchaseBuilderView
	err := uc.drafts.Purchase.Update(scope, func(d *order.PurchaseDraft) error {
		d.RemoveItem(productID)
		view = purchaseView(d)
		return nil
	})
	return view, err
}

// SubmitPurchase valida localmente y, solo si pasa, crea la orden de compra.
func (uc *OrderUseCase) SubmitPurchase(ctx context.Context, api ports.OrderAPI, scope string, supplierID int64) (*entity.PurchaseOrderDetail, *PurchaseBuilderView, error) {
	var (
		payload order.PurchasePayload
		view    *PurchaseBuilderView
	)
	err := uc.drafts.Purchase.Update(scope, func(d *order.PurchaseDraft) error {
		if supplierID != 0 {
			d.SelectSupplier(supplierID)
		}
		view = purchaseView(d)
		var err error
		payload, err = d.Payload()
		return err
	})
	if err != nil {
		return nil, view, err
	}

	created, err := api.CreatePurchaseOrder(ctx, payload)
	if err != nil {
		uc.log.Warn().Err(err).Int64("supplier_id", payload.SupplierID).Int("items", len(payload.Items)).Msg("crear orden de compra")
		return nil, view, err
	}
	uc.drafts.Purchase.Discard(scope)
	uc.log.Info().Int64("order_id", created.Order.ID).Int("items", len(payload.Items)).Msg("orden de compra creada")
	return created, nil, nil
}

// UpdatePurchaseStatus valida el estado antes de enviarlo.
func (uc *OrderUseCase) UpdatePurchaseStatus(ctx context.Context, api ports.OrderAPI, id int64, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !entity.ValidOrderStatus(status) {
		return &FormError{Fields: map[string]string{"status": "Estado inválido"}}
	}
	return api.UpdatePurchaseOrderStatus(ctx, id, status)
}

// ── Detalle ──

// OrderLineView línea de una orden ya creada con el producto resuelto.
type OrderLineView struct {
	ProductID  int64
	Name       string
	SKU        string
	Quantity   int
	UnitAmount decimal.Decimal
	Subtotal   decimal.Decimal
}

// OrderView cabecera + líneas de una orden (venta o compra) lista para mostrar o imprimir.
type OrderView struct {
	Kind         order.Kind
	ID           int64
	Date         *time.Time
	Status       string
	Counterparty string
	Lines        []OrderLineView
	Total        decimal.Decimal
}

func productName(catalog *order.Catalog, id int64) (string, string) {
	if p, ok := catalog.Product(id); ok {
		return p.Name, p.SKU
	}
	return fmt.Sprintf("Producto #%d", id), ""
}

// SalesDetail lee la orden y el catálogo en paralelo y resuelve nombres.
func (uc *OrderUseCase) SalesDetail(ctx context.Context, api ports.InventoryAPI, id int64) (*OrderView, error) {
	var (
		detail   *entity.SalesOrderDetail
		products []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = api.GetSalesOrder(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = api.ListProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("órdenes: venta %d: %w", id, err)
	}

	catalog := order.NewCatalog(products)
	o := detail.Order
	date := o.OrderDate
	v := &OrderView{
		Kind:         order.KindSales,
		ID:           o.ID,
		Date:         &date,
		Status:       o.Status,
		Counterparty: uc.customerName(ctx, api, o),
		Total:        detail.Total(),
	}
	if o.TotalAmount.Valid {
		v.Total = o.TotalAmount.Decimal
	}
	for _, it := range detail.Items {
		name, sku := productName(catalog, it.ProductID)
		v.Lines = append(v.Lines, OrderLineView{
			ProductID: it.ProductID, Name: name, SKU: sku, Quantity: it.Quantity,
			UnitAmount: it.UnitPrice, Subtotal: it.Subtotal(),
		})
	}
	return v, nil
}

func (uc *OrderUseCase) customerName(ctx context.Context, api ports.PartnerAPI, o entity.SalesOrder) string {
	if o.CustomerName != "" {
		return o.CustomerName
	}
	if !o.CustomerID.Valid {
		return "Sin cliente"
	}
	c, err := api.GetCustomer(ctx, o.CustomerID.Int64)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Int64("customer_id", o.CustomerID.Int64).Msg("resolver cliente")
		}
		return fmt.Sprintf("Cliente #%d", o.CustomerID.Int64)
	}
	return c.Name
}

// PurchaseDetail lee la orden de compra y el catálogo en paralelo.
func (uc *OrderUseCase) PurchaseDetail(ctx context.Context, api ports.InventoryAPI, id int64) (*OrderView, error) {
	var (
		detail   *entity.PurchaseOrderDetail
		products []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = api.GetPurchaseOrder(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = api.ListProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("órdenes: compra %d: %w", id, err)
	}

	catalog := order.NewCatalog(products)
	o := detail.Order
	v := &OrderView{
		Kind:         order.KindPurchase,
		ID:           o.ID,
		Date:         o.OrderDate,
		Status:       o.Status,
		Counterparty: uc.supplierName(ctx, api, o),
		Total:        detail.Total(),
	}
	for _, it := range detail.Items {
		name, sku := productName(catalog, it.ProductID)
		v.Lines = append(v.Lines, OrderLineView{
			ProductID: it.ProductID, Name: name, SKU: sku, Quantity: it.Quantity,
			UnitAmount: it.UnitCost, Subtotal: it.Subtotal(),
		})
	}
	return v, nil
}

func (uc *OrderUseCase) supplierName(ctx context.Context, api ports.PartnerAPI, o entity.PurchaseOrder) string {
	if o.SupplierName != "" {
		return o.SupplierName
	}
	if !o.SupplierID.Valid {
		return "Sin proveedor"
	}
	s, err := api.GetSupplier(ctx, o.SupplierID.Int64)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Int64("supplier_id", o.SupplierID.Int64).Msg("resolver proveedor")
		}
		return fmt.Sprintf("Proveedor #%d", o.SupplierID.Int64)
	}
	return s.Name
}

// ── PDF ──

// StatusLabel etiqueta en castellano del estado de una orden.
func StatusLabel(status string) string {
	switch status {
	case entity.OrderStatusPending:
		return "Pendiente"
	case entity.OrderStatusCompleted:
		return "Completada"
	case entity.OrderStatusCancelled:
		return "Cancelada"
	}
	return status
}

// PDFData arma los datos del PDF con importes ya formateados.
func PDFData(v *OrderView) ports.OrderPDFData {
	data := ports.OrderPDFData{
		Title:        "Orden de venta",
		OrderID:      v.ID,
		Counterparty: v.Counterparty,
		Status:       StatusLabel(v.Status),
		Total:        money.Format(v.Total),
	}
	if v.Kind == order.KindPurchase {
		data.Title = "Orden de compra"
	}
	if v.Date != nil && !v.Date.IsZero() {
		data.Date = v.Date.Format("02/01/2006")
	}
	for _, l := range v.Lines {
		data.Lines = append(data.Lines, ports.OrderPDFLine{
			ProductName: l.Name,
			SKU:         l.SKU,
			Quantity:    money.Quantity(l.Quantity),
			UnitAmount:  money.Format(l.UnitAmount),
			Subtotal:    money.Format(l.Subtotal),
		})
	}
	return data
}

// OrderPDF genera el PDF y el nombre de archivo sugerido.
func (uc *OrderUseCase) OrderPDF(v *OrderView) ([]byte, string, error) {
	b, err := uc.pdf.GenerateOrderPDF(PDFData(v))
	if err != nil {
		return nil, "", fmt.Errorf("órdenes: pdf %s %d: %w", v.Kind, v.ID, err)
	}
	prefix := "venta"
	if v.Kind == order.KindPurchase {
		prefix = "compra"
	}
	return b, fmt.Sprintf("%s-%d.pdf", prefix, v.ID), nil
}
