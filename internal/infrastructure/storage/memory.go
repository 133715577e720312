package storage

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-web/internal/domain/repository"
)

var _ repository.DurableStorage = (*MemoryStorage)(nil)

// MemoryStorage almacenamiento en memoria del proceso. Se pierde al reiniciar.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryStorage crea un almacenamiento vacío.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]map[string]string)}
}

func (s *MemoryStorage) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[scope][key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[scope]
	if !ok {
		bucket = make(map[string]string)
		s.data[scope] = bucket
	}
	bucket[key] = value
	return nil
}

func (s *MemoryStorage) Remove(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[scope]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.data, scope)
	}
	return nil
}
