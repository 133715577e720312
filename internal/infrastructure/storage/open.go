package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-web/internal/domain/repository"
	"github.com/jhoicas/Inventario-web/pkg/config"
)

// Open construye el almacenamiento durable según STORAGE_DRIVER.
// El closer devuelto libera la conexión (no-op para memory y file).
func Open(ctx context.Context, cfg *config.Config) (repository.DurableStorage, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemoryStorage(), noop, nil
	case "file":
		s, err := NewFileStorage(cfg.Storage.FilePath)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.Storage.SQLite)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "postgres":
		s, err := OpenPostgres(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
}
