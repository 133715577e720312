package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-web/internal/domain/repository"
	"github.com/jhoicas/Inventario-web/pkg/config"
)

// contrato común a todas las implementaciones
func exerciseStorage(t *testing.T, s repository.DurableStorage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "sid-1", repository.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "sid-1", repository.KeyAuthToken, "tok-1"))
	require.NoError(t, s.Set(ctx, "sid-2", repository.KeyAuthToken, "tok-2"))
	require.NoError(t, s.Set(ctx, "sid-1", repository.KeyAuthToken, "tok-1b"))

	v, ok, err := s.Get(ctx, "sid-1", repository.KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1b", v, "Set sobrescribe")

	v, _, _ = s.Get(ctx, "sid-2", repository.KeyAuthToken)
	assert.Equal(t, "tok-2", v, "los scopes no se mezclan")

	require.NoError(t, s.Remove(ctx, "sid-1", repository.KeyAuthToken))
	require.NoError(t, s.Remove(ctx, "sid-1", repository.KeyAuthToken), "Remove es idempotente")
	require.NoError(t, s.Remove(ctx, "sin-scope", repository.KeyUser))

	_, ok, err = s.Get(ctx, "sid-1", repository.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sessions.json")
	s, err := NewFileStorage(path)
	require.NoError(t, err)
	exerciseStorage(t, s)

	// Los datos sobreviven a una nueva instancia
	require.NoError(t, s.Set(context.Background(), "sid-9", repository.KeyUser, `{"id":1}`))
	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(context.Background(), "sid-9", repository.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)
}

func TestNewFileStorage_RutaVacia(t *testing.T) {
	_, err := NewFileStorage("  ")
	assert.Error(t, err)
}

func TestSQLiteStorage(t *testing.T) {
	s, err := OpenSQLite(context.Background(), "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStorage(t, s)
}

func TestSQLiteStorage_PurgeBefore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(ctx, "sid-1", repository.KeyAuthToken, "tok"))
	n, err := s.PurgeBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, err := s.Get(ctx, "sid-1", repository.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{Storage: config.StorageConfig{Driver: "memory"}}
	s, closer, err := Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)
	assert.NoError(t, closer())

	cfg.Storage = config.StorageConfig{Driver: "file", FilePath: filepath.Join(t.TempDir(), "s.json")}
	s, _, err = Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	cfg.Storage = config.StorageConfig{Driver: "sqlite", SQLite: "file::memory:"}
	s, closer, err = Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLStorage{}, s)
	assert.NoError(t, closer())

	cfg.Storage = config.StorageConfig{Driver: "redis"}
	_, _, err = Open(ctx, cfg)
	assert.Error(t, err)
}
