package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/application/session"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
	"github.com/jhoicas/Inventario-web/internal/domain/repository"
	"github.com/jhoicas/Inventario-web/internal/infrastructure/apiclient"
	infrapdf "github.com/jhoicas/Inventario-web/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-web/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Inventario-web/internal/interfaces/http"
	"github.com/jhoicas/Inventario-web/pkg/config"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// harness front-end completo contra una API falsa (httptest) y almacenamiento en memoria.
type harness struct {
	app     *fiber.App
	store   *storage.MemoryStorage
	backend *httptest.Server

	mu   sync.Mutex
	hits map[string]int
	auth []string
}

func newHarness(t *testing.T, routes map[string]http.HandlerFunc) *harness {
	t.Helper()
	h := &harness{store: storage.NewMemoryStorage(), hits: map[string]int{}}

	mux := http.NewServeMux()
	for pattern, fn := range routes {
		mux.HandleFunc(pattern, fn)
	}
	h.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.hits[r.Method+" "+r.URL.Path]++
		h.auth = append(h.auth, r.Header.Get("Authorization"))
		h.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(h.backend.Close)

	log := logger.Nop()
	api := apiclient.New(config.APIConfig{BaseURL: h.backend.URL, Timeout: 2 * time.Second}, log)

	engine := html.New("../../../web/templates", ".html")
	engine.AddFuncMap(httpRouter.TemplateFuncs())
	h.app = fiber.New(fiber.Config{Views: engine, ErrorHandler: httpRouter.ErrorHandler(log)})
	h.app.Use(requestid.New(requestid.Config{ContextKey: httpRouter.LocalRequestID}))

	httpRouter.Router(h.app, httpRouter.RouterDeps{
		API:           api,
		Storage:       h.store,
		StorageDriver: "memory",
		Cookie:        httpRouter.CookieConfig{Name: "sid"},
		ConnectURL:    "https://auth.example.com/connect",
		AuthUC:        usecase.NewAuthUseCase(api, log),
		DashboardUC:   usecase.NewDashboardUseCase(),
		ProductUC:     usecase.NewProductUseCase(),
		PartnerUC:     usecase.NewPartnerUseCase(),
		OrderUC:       usecase.NewOrderUseCase(order.NewDrafts(time.Minute), infrapdf.NewMarotoOrderPDF("test"), log),
		Log:           log,
	})
	return h
}

func (h *harness) count(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[key]
}

// login deja una sesión abierta para un sid nuevo.
func (h *harness) login(t *testing.T) string {
	t.Helper()
	sid := uuid.NewString()
	s, err := session.Open(context.Background(), h.store, sid, nil)
	require.NoError(t, err)
	require.NoError(t, s.Login(context.Background(), "tok-123", entity.User{ID: 1, Name: "Ana", Role: entity.RoleAdmin}))
	return sid
}

func (h *harness) do(t *testing.T, method, path, sid string, form url.Values, headers ...string) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (h *harness) stored(t *testing.T, sid, key string) (string, bool) {
	t.Helper()
	v, ok, err := h.store.Get(context.Background(), sid, key)
	require.NoError(t, err)
	return v, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var catalogRoutes = map[string]http.HandlerFunc{
	"GET /products": func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []entity.Product{
			{ID: 7, Name: "Tornillo", SKU: "TOR-7", Quantity: 10, MinStock: 2},
			{ID: 8, Name: "Tuerca", SKU: "TUE-8", Quantity: 1, MinStock: 5},
		})
	},
	"GET /customers": func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []entity.Customer{{ID: 1, Name: "ACME"}})
	},
}

// ── Guard ──

func TestGuard_SinSesionRedirigeALogin(t *testing.T) {
	h := newHarness(t, nil)

	resp := h.do(t, http.MethodGet, "/products", "", nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "sid=")
	assert.Equal(t, 0, h.count("GET /products"))
}

func TestGuard_JSONSinSesion401(t *testing.T) {
	h := newHarness(t, nil)

	resp := h.do(t, http.MethodGet, "/scanner/lookup?code=123", "", nil, fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginPage_ConSesionVaAlInicio(t *testing.T) {
	h := newHarness(t, nil)
	sid := h.login(t)

	resp := h.do(t, http.MethodGet, "/login", sid, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}

// ── Auth ──

func TestLogin_GuardaSesion(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"POST /users/login": func(w http.ResponseWriter, r *http.Request) {
			var req dto.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "secreto" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
				return
			}
			writeJSON(w, http.StatusOK, dto.LoginResponse{Token: "tok-xyz", User: entity.User{ID: 3, Name: "Ana", Role: entity.RoleVendedor}})
		},
	})
	sid := uuid.NewString()

	resp := h.do(t, http.MethodPost, "/login", sid, url.Values{"email": {"ana@x.com"}, "password": {"mal"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	_, ok := h.stored(t, sid, repository.KeyAuthToken)
	assert.False(t, ok)

	resp = h.do(t, http.MethodPost, "/login", sid, url.Values{"email": {"ana@x.com"}, "password": {"secreto"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	token, ok := h.stored(t, sid, repository.KeyAuthToken)
	require.True(t, ok)
	assert.Equal(t, "tok-xyz", token)
}

func TestLogout_BorraSesion(t *testing.T) {
	h := newHarness(t, nil)
	sid := h.login(t)

	resp := h.do(t, http.MethodPost, "/logout", sid, url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	_, ok := h.stored(t, sid, repository.KeyAuthToken)
	assert.False(t, ok)
}

func TestAPI401_CierraSesionYVaAlLogin(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"GET /products": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
		},
	})
	sid := h.login(t)

	resp := h.do(t, http.MethodGet, "/products", sid, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	_, ok := h.stored(t, sid, repository.KeyAuthToken)
	assert.False(t, ok, "el 401 invalida la sesión")
	_, ok = h.stored(t, sid, repository.KeyUser)
	assert.False(t, ok)
	flash, ok := h.stored(t, sid, repository.KeyFlash)
	require.True(t, ok)
	assert.Contains(t, flash, "expiró")

	h.mu.Lock()
	assert.Contains(t, h.auth, "Bearer tok-123")
	h.mu.Unlock()
}

// ── Páginas ──

func TestProducts_ListaRenderiza(t *testing.T) {
	h := newHarness(t, catalogRoutes)
	sid := h.login(t)

	resp := h.do(t, http.MethodGet, "/products?search=tor", sid, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Tornillo")
	assert.NotContains(t, string(body), "Tuerca")
}

func TestIntegrations_ResultadoOAuthAFlash(t *testing.T) {
	h := newHarness(t, nil)
	sid := h.login(t)

	resp := h.do(t, http.MethodGet, "/integrations?success=false&error=denied", sid, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/integrations", resp.Header.Get(fiber.HeaderLocation))
	flash, ok := h.stored(t, sid, repository.KeyFlash)
	require.True(t, ok)
	assert.Contains(t, flash, "Rechazaste la autorización")
	assert.NotContains(t, flash, "exitosa")
	assert.Equal(t, 0, h.count("GET /integrations"))
}

func TestIntegrations_ResultadoOAuth(t *testing.T) {
	cases := map[string]struct {
		query string
		want  string
	}{
		"exito":            {"?success=true", "Conexión exitosa"},
		"codigo conocido":  {"?success=false&error=token_exchange_failed", "No se pudieron obtener los tokens"},
		"codigo ajeno":     {"?success=false&error=otra_cosa", "Hubo un problema al conectar"},
		"fallo sin codigo": {"?success=false", "Hubo un problema al conectar"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, nil)
			sid := h.login(t)

			resp := h.do(t, http.MethodGet, "/integrations"+tc.query, sid, nil)
			assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
			flash, ok := h.stored(t, sid, repository.KeyFlash)
			require.True(t, ok)
			assert.Contains(t, flash, tc.want)
		})
	}
}

func TestReports_DescargaConNombreFijo(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"GET /reports/products/xlsx": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Disposition", `attachment; filename="export-20240101.xlsx"`)
			_, _ = w.Write([]byte("PK\x03\x04"))
		},
	})
	sid := h.login(t)

	resp := h.do(t, http.MethodGet, "/reports/products/xlsx", sid, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="productos.xlsx"`, resp.Header.Get(fiber.HeaderContentDisposition))

	resp = h.do(t, http.MethodGet, "/reports/facturas/xlsx", sid, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestScannerLookup_JSON(t *testing.T) {
	h := newHarness(t, nil)
	sid := h.login(t)

	resp := h.do(t, http.MethodGet, "/scanner/lookup?code=%20779123%20", sid, nil, fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.ScannerLookupResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "779123", out.Code)
	assert.Equal(t, "/products?search=779123", out.Redirect)

	resp = h.do(t, http.MethodGet, "/scanner/lookup?code=", sid, nil, fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ── Constructor de ventas ──

func TestSalesBuilder_SubmitSinClienteNoLlamaALaAPI(t *testing.T) {
	h := newHarness(t, catalogRoutes)
	sid := h.login(t)

	resp := h.do(t, http.MethodGet, "/sales-orders/new", sid, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/sales-orders/new/items", sid, url.Values{"product_id": {"7"}, "quantity": {"2"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Tornillo")

	resp = h.do(t, http.MethodPost, "/sales-orders/new", sid, url.Values{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, 0, h.count("POST /sales-orders"))
}

func TestSalesBuilder_StockInsuficiente(t *testing.T) {
	h := newHarness(t, catalogRoutes)
	sid := h.login(t)

	h.do(t, http.MethodGet, "/sales-orders/new", sid, nil)
	resp := h.do(t, http.MethodPost, "/sales-orders/new/items", sid, url.Values{"product_id": {"8"}, "quantity": {"5"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSalesBuilder_NavegarDescartaBorrador(t *testing.T) {
	h := newHarness(t, catalogRoutes)
	sid := h.login(t)

	h.do(t, http.MethodGet, "/sales-orders/new", sid, nil)
	h.do(t, http.MethodGet, "/products", sid, nil)

	resp := h.do(t, http.MethodPost, "/sales-orders/new/items", sid, url.Values{"product_id": {"7"}, "quantity": {"1"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/sales-orders/new", resp.Header.Get(fiber.HeaderLocation))
}

func TestSalesBuilder_SubmitCreaOrden(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"POST /sales-orders": func(w http.ResponseWriter, r *http.Request) {
			var p order.SalesPayload
			_ = json.NewDecoder(r.Body).Decode(&p)
			if p.CustomerID != 1 || len(p.Items) != 1 || p.Items[0].Quantity != 3 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payload inesperado"})
				return
			}
			writeJSON(w, http.StatusCreated, entity.SalesOrderDetail{Order: entity.SalesOrder{ID: 42}})
		},
	}
	for k, v := range catalogRoutes {
		routes[k] = v
	}
	h := newHarness(t, routes)
	sid := h.login(t)

	h.do(t, http.MethodGet, "/sales-orders/new", sid, nil)
	h.do(t, http.MethodPost, "/sales-orders/new/items", sid, url.Values{"product_id": {"7"}, "quantity": {"1"}})
	h.do(t, http.MethodPost, "/sales-orders/new/items", sid, url.Values{"product_id": {"7"}, "quantity": {"2"}})

	resp := h.do(t, http.MethodPost, "/sales-orders/new", sid, url.Values{"customer_id": {"1"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/sales-orders", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, 1, h.count("POST /sales-orders"))
	flash, _ := h.stored(t, sid, repository.KeyFlash)
	assert.Contains(t, flash, "#42")
}

// ── Sistema ──

func TestHealth_APICaida(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"GET /health": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})

	resp := h.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "unreachable", out.API)
	assert.Equal(t, "memory", out.Storage)
	assert.Empty(t, resp.Header.Get(fiber.HeaderSetCookie), "health no abre sesión")
}

func TestSession_Estado(t *testing.T) {
	h := newHarness(t, nil)

	resp := h.do(t, http.MethodGet, "/session", "", nil)
	var out dto.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Authenticated)
	assert.Nil(t, out.User)

	sid := h.login(t)
	resp = h.do(t, http.MethodGet, "/session", sid, nil)
	out = dto.SessionResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Authenticated)
	require.NotNil(t, out.User)
	assert.Equal(t, "Ana", out.User.Name)
	assert.Nil(t, out.ExpiresAt, "el token de prueba no es un JWT")
}
