package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jhoicas/Inventario-web/pkg/config"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

const (
	maxJSONBody     = 4 << 20
	maxDownloadBody = 50 << 20
)

// Credentials lo que el cliente necesita de la sesión: el token y cómo descartarla ante un 401.
type Credentials interface {
	Token() string
	Invalidate(ctx context.Context) error
}

// Client cliente compartido de la API REST de inventario. Es seguro para uso concurrente;
// cada request lo usa a través de un Conn atado a su sesión.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// noRedirect captura el Location de respuestas 3xx (conexión OAuth).
	noRedirect *http.Client
	log        *logger.Logger
}

// New construye el cliente. El transport queda instrumentado con OpenTelemetry.
func New(cfg config.APIConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		noRedirect: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: log.Child("apiclient"),
	}
}

// BaseURL URL base configurada (sin barra final).
func (c *Client) BaseURL() string { return c.baseURL }

// Conn ata el cliente a una sesión. creds nil = llamadas anónimas (login, registro).
func (c *Client) Conn(creds Credentials) *Conn {
	return &Conn{client: c, creds: creds}
}

// Conn cliente ligado a las credenciales de un request.
type Conn struct {
	client *Client
	creds  Credentials
}

// ── Request ID ────────────────────────────────────────────────────────────────

type requestIDKey struct{}

// WithRequestID propaga el id de request hacia la API (header X-Request-ID).
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ── Núcleo ────────────────────────────────────────────────────────────────────

func (c *Conn) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("apiclient: serializar %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.client.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if id := requestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	return req, nil
}

// send ejecuta el request y aplica la política común de respuestas:
// 401 invalida la sesión; cualquier otro no 2xx/3xx se convierte en *APIError.
// Sin reintentos.
func (c *Conn) send(hc *http.Client, req *http.Request, limit int64) (*http.Response, []byte, error) {
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.client.log.Warn().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("API sin respuesta")
		return nil, nil, &NetworkError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, nil, &NetworkError{Method: req.Method, Path: req.URL.Path, Err: err}
	}

	c.client.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("API")

	if resp.StatusCode == http.StatusUnauthorized {
		if c.creds != nil {
			if err := c.creds.Invalidate(req.Context()); err != nil {
				c.client.log.Error().Err(err).Msg("no se pudo invalidar la sesión")
			}
		}
		return resp, raw, parseError(resp.StatusCode, raw)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := parseError(resp.StatusCode, raw)
		ev := c.client.log.Warn()
		if resp.StatusCode >= http.StatusInternalServerError {
			ev = c.client.log.Error()
		}
		ev.Str("method", req.Method).Str("path", req.URL.Path).Int("status", resp.StatusCode).Str("error", apiErr.Error()).Msg("API respondió con error")
		return resp, raw, apiErr
	}
	return resp, raw, nil
}

// do envía in como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func (c *Conn) do(ctx context.Context, method, path string, in, out any) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	_, raw, err := c.send(c.client.httpClient, req, maxJSONBody)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decodificar %s %s: %w", method, path, err)
	}
	return nil
}

// Download descarga un archivo binario (reportes Excel).
func (c *Conn) Download(ctx context.Context, path string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "*/*")
	resp, raw, err := c.send(c.client.httpClient, req, maxDownloadBody)
	if err != nil {
		return nil, "", err
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

// ErrNoRedirect la API respondió 2xx donde se esperaba una redirección.
var ErrNoRedirect = errors.New("apiclient: la respuesta no es una redirección")

// RedirectLocation hace GET sin seguir redirecciones y devuelve el header Location.
func (c *Conn) RedirectLocation(ctx context.Context, path string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	resp, _, err := c.send(c.client.noRedirect, req, maxJSONBody)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return "", ErrNoRedirect
	}
	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", ErrNoRedirect
	}
	return loc, nil
}
