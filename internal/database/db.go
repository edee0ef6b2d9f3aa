package database

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/lib/pq"
	"wedding-rsvp/internal/config"
	"wedding-rsvp/pkg/logger"
)

var (
	pool *sql.DB
	once sync.Once
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB returns the global Postgres pool (initialized on first use).
// It is nil when DATABASE_URL is unset or the server does not answer.
func DB(ctx context.Context) *sql.DB {
	once.Do(func() {
		cfg := config.Get()
		if cfg.DatabaseURL == "" {
			logger.Warn(ctx, "DATABASE_URL is not set")
			return
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error(ctx, "Failed to open database", "error", err)
			return
		}
		db.SetMaxOpenConns(cfg.DBPoolSize)
		db.SetMaxIdleConns(cfg.DBPoolSize / 2)
		if err := db.PingContext(ctx); err != nil {
			logger.Error(ctx, "Database ping failed", "error", err)
			_ = db.Close()
			return
		}
		pool = db
		logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
	})
	return pool
}

// MigrateOrCreateSchema creates the kv_store table when it is missing.
func MigrateOrCreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, kvSchema)
	return err
}
