package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// ProductUseCase listado con búsqueda, altas/ediciones validadas y ajustes de stock.
// Stock y movimientos los calcula la API; acá solo se valida la entrada.
type ProductUseCase struct{}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase() *ProductUseCase {
	return &ProductUseCase{}
}

// ProductList resultado del listado ya filtrado.
type ProductList struct {
	Search   string
	Items    []entity.Product
	LowStock int
}

// List trae el catálogo y filtra por nombre o SKU (contiene, sin distinguir mayúsculas).
// La API no filtra: la búsqueda es local.
func (uc *ProductUseCase) List(ctx context.Context, api ports.ProductAPI, search string) (*ProductList, error) {
	all, err := api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos: listar: %w", err)
	}
	out := &ProductList{Search: strings.TrimSpace(search)}
	out.Items = FilterProducts(all, out.Search)
	for _, p := range out.Items {
		if p.LowStock() {
			out.LowStock++
		}
	}
	return out, nil
}

// FilterProducts devuelve los productos cuyo nombre o SKU contiene q.
func FilterProducts(products []entity.Product, q string) []entity.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
			out = append(out, p)
		}
	}
	return out
}

// ValidateProduct reglas del formulario de producto.
func ValidateProduct(in dto.ProductInput) error {
	fe := formErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe.add("name", "El nombre es obligatorio")
	}
	if strings.TrimSpace(in.SKU) == "" {
		fe.add("sku", "El SKU es obligatorio")
	}
	if in.Quantity < 0 {
		fe.add("quantity", "La cantidad no puede ser negativa")
	}
	return fe.err()
}

func normalizeProduct(in dto.ProductInput) dto.ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// Create valida y crea el producto.
func (uc *ProductUseCase) Create(ctx context.Context, api ports.ProductAPI, in dto.ProductInput) (*entity.Product, error) {
	in = normalizeProduct(in)
	if err := ValidateProduct(in); err != nil {
		return nil, err
	}
	return api.CreateProduct(ctx, in)
}

// Update valida y actualiza el producto.
func (uc *ProductUseCase) Update(ctx context.Context, api ports.ProductAPI, id int64, in dto.ProductInput) error {
	in = normalizeProduct(in)
	if err := ValidateProduct(in); err != nil {
		return err
	}
	return api.UpdateProduct(ctx, id, in)
}

// ProductDetail producto más su historial de movimientos.
type ProductDetail struct {
	Product   entity.Product
	Movements []entity.StockMovement
}

// Detail carga producto y movimientos.
func (uc *ProductUseCase) Detail(ctx context.Context, api ports.ProductAPI, id int64) (*ProductDetail, error) {
	p, err := api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("productos: obtener %d: %w", id, err)
	}
	movs, err := api.ProductMovements(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("productos: movimientos de %d: %w", id, err)
	}
	return &ProductDetail{Product: *p, Movements: movs}, nil
}

// AdjustStock ajuste manual. Cero no tiene sentido; sin motivo se usa el ajuste manual.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, api ports.ProductAPI, id int64, req dto.AdjustStockRequest) error {
	if req.QuantityChange == 0 {
		return &FormError{Fields: map[string]string{"quantity_change": "El ajuste no puede ser cero"}}
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		req.Reason = entity.ReasonManualAdjustment
	}
	return api.AdjustStock(ctx, id, req)
}

// ── Escáner ──

// ScannerLookup normaliza un código leído por el escáner y arma la redirección al listado.
func ScannerLookup(raw string) (dto.ScannerLookupResponse, error) {
	code := strings.TrimSpace(raw)
	code = strings.Trim(code, "\x00\r\n\t")
	if code == "" {
		return dto.ScannerLookupResponse{}, &FormError{Fields: map[string]string{"code": "Código vacío"}}
	}
	return dto.ScannerLookupResponse{
		Code:     code,
		Redirect: "/products?search=" + url.QueryEscape(code),
	}, nil
}
