package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Inventario-web/internal/domain/repository"
)

// Tipos de flash (clases CSS del layout).
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash notificación no bloqueante que se muestra una sola vez en la próxima página.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SetFlash reemplaza el flash pendiente.
func (s *Store) SetFlash(ctx context.Context, kind, message string) error {
	raw, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return fmt.Errorf("session: codificar flash: %w", err)
	}
	if err := s.storage.Set(ctx, s.scope, repository.KeyFlash, string(raw)); err != nil {
		return fmt.Errorf("session: guardar flash: %w", err)
	}
	return nil
}

// PopFlash lee y borra el flash pendiente. Un flash ilegible se descarta.
func (s *Store) PopFlash(ctx context.Context) (*Flash, error) {
	raw, ok, err := s.storage.Get(ctx, s.scope, repository.KeyFlash)
	if err != nil {
		return nil, fmt.Errorf("session: leer flash: %w", err)
	}
	if !ok {
		return nil, nil
	}
	if err := s.storage.Remove(ctx, s.scope, repository.KeyFlash); err != nil {
		return nil, fmt.Errorf("session: borrar flash: %w", err)
	}
	var f Flash
	if err := json.Unmarshal([]byte(raw), &f); err != nil || f.Message == "" {
		return nil, nil
	}
	return &f, nil
}
