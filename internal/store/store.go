// Package store holds the key/value capability that submissions are
// recorded in, with Redis, Postgres and SQLite backends.
//
// Every key is visible to every visitor of the page; there is no
// per-visitor scope.
package store

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when a backend has no live connection.
var ErrUnavailable = errors.New("store unavailable")

// KV is the key/value capability submissions are written to.
type KV interface {
	// List returns every key starting with prefix, in no particular order.
	List(ctx context.Context, prefix string) ([]string, error)
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
