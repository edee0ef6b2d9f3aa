package store

import (
	"context"
	"regexp"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/database"
)

func newRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func exercise(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "submission:1", `{"id":1}`))
	require.NoError(t, kv.Set(ctx, "submission:2", `{"id":2}`))
	require.NoError(t, kv.Set(ctx, "other:3", `{"id":3}`))

	keys, err := kv.List(ctx, "submission:")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"submission:1", "submission:2"}, keys)

	v, ok, err := kv.Get(ctx, "submission:2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":2}`, v)

	_, ok, err = kv.Get(ctx, "submission:404")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "submission:1", `{"id":1,"name":"x"}`))
	v, _, err = kv.Get(ctx, "submission:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"name":"x"}`, v)
}

func TestRedisKV(t *testing.T) {
	kv, _ := newRedisKV(t)
	exercise(t, kv)
}

func TestRedisKVEscapesGlobPrefix(t *testing.T) {
	kv, mr := newRedisKV(t)
	require.NoError(t, mr.Set("a*b:1", "x"))
	require.NoError(t, mr.Set("aXb:1", "y"))

	keys, err := kv.List(context.Background(), "a*b:")
	require.NoError(t, err)
	assert.Equal(t, []string{"a*b:1"}, keys)
}

func TestRedisKVUnavailable(t *testing.T) {
	kv := NewRedis(nil)
	_, err := kv.List(context.Background(), "submission:")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, kv.Set(context.Background(), "k", "v"), ErrUnavailable)
}

func TestSQLiteKV(t *testing.T) {
	db, err := database.OpenLocal(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	exercise(t, NewSQLite(db))
}

func TestPostgresKV(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	kv := NewPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(postgresQueries.list)).
		WithArgs("submission:").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("submission:1").AddRow("submission:2"))
	keys, err := kv.List(ctx, "submission:")
	require.NoError(t, err)
	assert.Equal(t, []string{"submission:1", "submission:2"}, keys)

	mock.ExpectQuery(regexp.QuoteMeta(postgresQueries.get)).
		WithArgs("submission:9").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, ok, err := kv.Get(ctx, "submission:9")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec(regexp.QuoteMeta(postgresQueries.set)).
		WithArgs("submission:1", `{"id":1}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, kv.Set(ctx, "submission:1", `{"id":1}`))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTracedPassesThrough(t *testing.T) {
	kv, _ := newRedisKV(t)
	exercise(t, Traced(kv, "redis"))
}
