package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Inventario-web/internal/domain/repository"
)

var _ repository.DurableStorage = (*SQLStorage)(nil)

// schemaKV es válido tanto en SQLite como en PostgreSQL.
const schemaKV = `
CREATE TABLE IF NOT EXISTS durable_kv (
	scope      TEXT NOT NULL,
	item_key   TEXT NOT NULL,
	item_value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (scope, item_key)
)`

// SQLStorage implementación sobre sqlx compartida por SQLite y PostgreSQL.
// Los placeholders se reescriben con Rebind según el driver.
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage asegura el esquema y devuelve el almacenamiento.
func NewSQLStorage(ctx context.Context, db *sqlx.DB) (*SQLStorage, error) {
	if _, err := db.ExecContext(ctx, schemaKV); err != nil {
		return nil, fmt.Errorf("storage: crear esquema: %w", err)
	}
	return &SQLStorage{db: db}, nil
}

func (s *SQLStorage) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var value string
	q := s.db.Rebind(`SELECT item_value FROM durable_kv WHERE scope = ? AND item_key = ?`)
	err := s.db.GetContext(ctx, &value, q, scope, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: leer %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStorage) Set(ctx context.Context, scope, key, value string) error {
	q := s.db.Rebind(`
INSERT INTO durable_kv (scope, item_key, item_value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (scope, item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, q, scope, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("storage: guardar %s: %w", key, err)
	}
	return nil
}

func (s *SQLStorage) Remove(ctx context.Context, scope, key string) error {
	q := s.db.Rebind(`DELETE FROM durable_kv WHERE scope = ? AND item_key = ?`)
	if _, err := s.db.ExecContext(ctx, q, scope, key); err != nil {
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	return nil
}

// PurgeBefore borra las entradas no modificadas desde before (sesiones abandonadas).
func (s *SQLStorage) PurgeBefore(ctx context.Context, before time.Time) (int64, error) {
	q := s.db.Rebind(`DELETE FROM durable_kv WHERE updated_at < ?`)
	res, err := s.db.ExecContext(ctx, q, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("storage: purgar: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close cierra la conexión subyacente.
func (s *SQLStorage) Close() error {
	return s.db.Close()
}
