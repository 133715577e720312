package entity

import "time"

// Plataformas de marketplace soportadas.
const PlatformMercadoLibre = "mercadolibre"

// Integration conexión OAuth con un marketplace (los tokens nunca llegan al front-end).
type Integration struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Platform       string    `json:"platform"`
	ExternalUserID *string   `json:"external_user_id,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlatformName nombre legible de la plataforma.
func PlatformName(platform string) string {
	switch platform {
	case PlatformMercadoLibre:
		return "Mercado Libre"
	default:
		return platform
	}
}
