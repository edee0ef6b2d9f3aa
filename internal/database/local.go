package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const localSchema = `CREATE TABLE IF NOT EXISTS local_storage (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenLocal opens the SQLite file backing the local fallback store and
// creates its table. ":memory:" is accepted for tests.
func OpenLocal(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("local store path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, localSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create local_storage: %w", err)
	}
	return db, nil
}
