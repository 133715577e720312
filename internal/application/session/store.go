package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/Inventario-web/internal/domain/entity"
	"github.com/jhoicas/Inventario-web/internal/domain/repository"
	"github.com/jhoicas/Inventario-web/pkg/jwt"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// Store espejo en memoria de la sesión persistida para un scope (navegador).
// Se abre al inicio de cada request y es seguro para uso concurrente: varias
// llamadas a la API de un mismo request pueden invalidarla a la vez.
type Store struct {
	storage repository.DurableStorage
	scope   string
	log     *logger.Logger

	mu    sync.RWMutex
	token string
	user  *entity.User
}

// Open lee authToken y user del almacenamiento durable.
// Un user ilegible deja la sesión cerrada y limpia el almacenamiento, sin devolver error.
// Solo los errores de E/S del almacenamiento se propagan.
func Open(ctx context.Context, storage repository.DurableStorage, scope string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{storage: storage, scope: scope, log: log}

	token, _, err := storage.Get(ctx, scope, repository.KeyAuthToken)
	if err != nil {
		return nil, fmt.Errorf("session: leer token: %w", err)
	}
	rawUser, hasUser, err := storage.Get(ctx, scope, repository.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("session: leer usuario: %w", err)
	}
	if !hasUser {
		s.token = token
		return s, nil
	}

	var u entity.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("usuario persistido ilegible; se descarta la sesión")
		if err := s.clear(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	s.token = token
	s.user = &u
	return s, nil
}

// Scope identificador del navegador dueño de esta sesión.
func (s *Store) Scope() string { return s.scope }

// Token devuelve el token actual o "" si no hay sesión.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User devuelve una copia del usuario cacheado o nil.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated exige token y usuario presentes.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsAdmin solo controla la visibilidad del enlace de administración.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// Login persiste token y usuario tal cual los devolvió la API (no se valida la forma del token).
func (s *Store) Login(ctx context.Context, token string, user entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: codificar usuario: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(ctx, s.scope, repository.KeyAuthToken, token); err != nil {
		return fmt.Errorf("session: guardar token: %w", err)
	}
	if err := s.storage.Set(ctx, s.scope, repository.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("session: guardar usuario: %w", err)
	}
	s.token = token
	s.user = &user
	return nil
}

// Logout borra la sesión persistida y en memoria. Es idempotente.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

// Invalidate se llama ante un 401 de la API. Mismo efecto que Logout; la segunda
// llamada concurrente encuentra la sesión ya vacía y no vuelve a tocar el almacenamiento.
func (s *Store) Invalidate(ctx context.Context) error {
	s.mu.RLock()
	empty := s.token == "" && s.user == nil
	s.mu.RUnlock()
	if empty {
		return nil
	}
	s.log.Info().Str("scope", s.scope).Msg("sesión invalidada por la API")
	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// La memoria se vacía recién cuando el almacenamiento confirmó el borrado; si falla,
	// un Invalidate posterior vuelve a intentarlo.
	if err := s.storage.Remove(ctx, s.scope, repository.KeyAuthToken); err != nil {
		return fmt.Errorf("session: borrar token: %w", err)
	}
	if err := s.storage.Remove(ctx, s.scope, repository.KeyUser); err != nil {
		return fmt.Errorf("session: borrar usuario: %w", err)
	}
	s.token = ""
	s.user = nil
	return nil
}

// Claims decodifica el JWT sin verificar firma, solo para mostrar rol y vencimiento.
// Devuelve nil si no hay token o si no tiene forma de JWT.
func (s *Store) Claims() *jwt.Claims {
	token := s.Token()
	if token == "" {
		return nil
	}
	claims, err := jwt.Inspect(token)
	if err != nil {
		return nil
	}
	return claims
}
