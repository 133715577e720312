package dto

import (
	"time"

	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// IntegrationView integración tal como la lista la API (sin tokens).
type IntegrationView struct {
	entity.Integration
	IsExpired bool `json:"is_expired"`
}

// Mensajes del callback OAuth (query ?success=&error=).
const (
	OAuthSuccessMessage = "¡Conexión exitosa! Tu cuenta de Mercado Libre ha sido conectada."
	oauthGenericError   = "Hubo un problema al conectar con Mercado Libre."
)

var oauthErrorMessages = map[string]string{
	"denied":                "Rechazaste la autorización. Intenta nuevamente si cambias de opinión.",
	"invalid_params":        "Parámetros inválidos en el callback.",
	"invalid_state":         "Estado inválido. Por favor, intenta nuevamente.",
	"token_exchange_failed": "No se pudieron obtener los tokens de acceso. Intenta nuevamente.",
	"database_error":        "Error al guardar la integración. Contacta a soporte.",
}

// OAuthErrorMessage traduce el código de error del callback; códigos desconocidos dan el genérico.
func OAuthErrorMessage(code string) string {
	if msg, ok := oauthErrorMessages[code]; ok {
		return msg
	}
	return oauthGenericError
}

// Expired recalcula el vencimiento respecto de now (la API también envía is_expired).
func (v IntegrationView) Expired(now time.Time) bool {
	return v.IsExpired || now.After(v.ExpiresAt)
}
