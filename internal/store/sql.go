package store

import (
	"context"
	"database/sql"
	"errors"
)

type queries struct {
	list string
	get  string
	set  string
}

var postgresQueries = queries{
	list: `SELECT key FROM kv_store WHERE left(key, length($1)) = $1`,
	get:  `SELECT value FROM kv_store WHERE key = $1`,
	set: `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
}

var sqliteQueries = queries{
	list: `SELECT key FROM local_storage WHERE substr(key, 1, length(?1)) = ?1`,
	get:  `SELECT value FROM local_storage WHERE key = ?1`,
	set: `INSERT INTO local_storage (key, value) VALUES (?1, ?2)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
}

// SQLKV keeps keys in a two-column table.
type SQLKV struct {
	db *sql.DB
	q  queries
}

// NewPostgres uses the kv_store table created by database.MigrateOrCreateSchema.
func NewPostgres(db *sql.DB) *SQLKV {
	return &SQLKV{db: db, q: postgresQueries}
}

// NewSQLite uses the local_storage table created by database.OpenLocal.
func NewSQLite(db *sql.DB) *SQLKV {
	return &SQLKV{db: db, q: sqliteQueries}
}

func (s *SQLKV) List(ctx context.Context, prefix string) ([]string, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	rows, err := s.db.QueryContext(ctx, s.q.list, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrUnavailable
	}
	var v string
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLKV) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return ErrUnavailable
	}
	_, err := s.db.ExecContext(ctx, s.q.set, key, value)
	return err
}
