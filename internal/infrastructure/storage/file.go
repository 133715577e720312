package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-web/internal/domain/repository"
)

var _ repository.DurableStorage = (*FileStorage)(nil)

// FileStorage guarda todo en un único documento JSON {scope: {key: value}}.
// Cada mutación reescribe el archivo completo (pensado para desarrollo o un solo nodo).
type FileStorage struct {
	path string

	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewFileStorage carga el archivo si existe; si no, arranca vacío.
func NewFileStorage(path string) (*FileStorage, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage: ruta de archivo requerida")
	}
	s := &FileStorage{
		path: path,
		data: make(map[string]map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStorage) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[scope][key]
	return v, ok, nil
}

func (s *FileStorage) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[scope]
	if !ok {
		bucket = make(map[string]string)
		s.data[scope] = bucket
	}
	bucket[key] = value
	return s.persistLocked()
}

func (s *FileStorage) Remove(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[scope]
	if !ok {
		return nil
	}
	if _, ok := bucket[key]; !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.data, scope)
	}
	return s.persistLocked()
}

func (s *FileStorage) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("storage: leer %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, &s.data); err != nil {
		return fmt.Errorf("storage: decodificar %s: %w", s.path, err)
	}
	if s.data == nil {
		s.data = make(map[string]map[string]string)
	}
	return nil
}

func (s *FileStorage) persistLocked() error {
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: codificar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("storage: crear directorio: %w", err)
	}
	// Escritura atómica: archivo temporal + rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("storage: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: renombrar: %w", err)
	}
	return nil
}
