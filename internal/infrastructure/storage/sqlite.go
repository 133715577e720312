package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenSQLite abre (o crea) la base SQLite indicada por dsn y asegura el esquema.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStorage, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: abrir sqlite: %w", err)
	}
	// SQLite serializa escrituras; con ":memory:" cada conexión sería otra base.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: pragma sqlite: %w", err)
	}
	s, err := NewSQLStorage(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
