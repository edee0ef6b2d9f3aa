package store

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

const scanCount = 200

// RedisKV stores each key as a plain Redis string.
type RedisKV struct {
	client *redis.Client
}

// NewRedis wraps an initialized client. A nil client yields a KV that always fails.
func NewRedis(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// List scans the keyspace for prefix. SCAN may repeat a key; each is returned once.
func (r *RedisKV) List(ctx context.Context, prefix string) ([]string, error) {
	if r.client == nil {
		return nil, ErrUnavailable
	}
	var keys []string
	seen := make(map[string]struct{})
	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Get reads one key.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if r.client == nil {
		return "", false, ErrUnavailable
	}
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set writes one key without expiry.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if r.client == nil {
		return ErrUnavailable
	}
	return r.client.Set(ctx, key, value, 0).Err()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
