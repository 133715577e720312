package dto

import "time"

// ErrorResponse cuerpo de error HTTP de los endpoints JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	API     string `json:"api"`
}

// SessionResponse GET /session: estado de la sesión del navegador.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	Expired       bool         `json:"expired"`
}

// SessionUser perfil expuesto en /session.
type SessionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ScannerLookupResponse GET /scanner/lookup.
type ScannerLookupResponse struct {
	Code     string `json:"code"`
	Redirect string `json:"redirect"`
}

// MessageResponse respuesta {message} de la API (reportes por email).
type MessageResponse struct {
	Message string `json:"message"`
}
