package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Inventario-web/internal/domain"
)

// GenericMessage se usa cuando la respuesta de error no trae un mensaje legible.
const GenericMessage = "error inesperado del servidor"

const maxPlainMessage = 200

// APIError respuesta no 2xx de la API de inventario.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Is mapea el status HTTP a los errores de dominio (errors.Is).
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrSessionInvalid:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrConflict:
		return e.Status == http.StatusConflict
	case domain.ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	case domain.ErrServer:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}

// NetworkError no hubo respuesta (DNS, conexión rechazada, timeout).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, domain.ErrNetwork.Error(), e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == domain.ErrNetwork }

// errorBody forma {error} o {error, details} que emite la API.
type errorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

// parseError arma el APIError a partir del cuerpo: JSON estructurado, texto plano
// (http.Error de la API) o mensaje genérico.
func parseError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: GenericMessage}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return apiErr
	}

	var eb errorBody
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &eb); err == nil {
			if eb.Error != "" {
				apiErr.Message = eb.Error
			}
			apiErr.Details = detailsText(eb.Details)
		}
		return apiErr
	}

	if utf8.ValidString(trimmed) && !strings.HasPrefix(trimmed, "<") {
		apiErr.Message = truncate(trimmed, maxPlainMessage)
	}
	return apiErr
}

func detailsText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return truncate(string(raw), maxPlainMessage)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
