package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrSessionInvalid la API respondió 401: la sesión se descarta y se vuelve al login.
	ErrSessionInvalid = errors.New("sesión inválida o expirada")
	// ErrNetwork no hubo respuesta de la API (caída, timeout, DNS).
	ErrNetwork = errors.New("no se pudo contactar al servidor")
	// ErrValidation validación local previa a cualquier llamada de red.
	ErrValidation = errors.New("entrada inválida")
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrForbidden  = errors.New("acceso denegado")
	ErrConflict   = errors.New("conflicto con el estado actual")
	// ErrServer cualquier otra respuesta no 2xx.
	ErrServer = errors.New("error del servidor")
	// ErrCorruptSession datos de sesión persistidos ilegibles.
	ErrCorruptSession = errors.New("datos de sesión corruptos")
)
