package repository

import "context"

// Claves conocidas del almacenamiento durable de la sesión del navegador.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
	KeyFlash     = "flash"
)

// DurableStorage define el puerto de almacenamiento clave/valor que sobrevive entre requests (DIP).
// Cada navegador tiene su propio scope (valor de la cookie sid).
type DurableStorage interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, scope, key string) (value string, ok bool, err error)
	Set(ctx context.Context, scope, key, value string) error
	// Remove es idempotente: borrar una clave ausente no es error.
	Remove(ctx context.Context, scope, key string) error
}
