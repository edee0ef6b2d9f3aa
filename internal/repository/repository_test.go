package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/database"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/store"
)

// memKV is an in-memory store.KV with injectable failures.
type memKV struct {
	data    map[string]string
	listErr error
	getErr  map[string]error
	setErr  error
	// repeat lists every key twice, as a SCAN during a rehash can.
	repeat bool
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}, getErr: map[string]error{}}
}

func (m *memKV) List(_ context.Context, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var keys []string
	for k := range m.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
			if m.repeat {
				keys = append(keys, k)
			}
		}
	}
	return keys, nil
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if err := m.getErr[key]; err != nil {
		return "", false, err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func sub(id int64) models.Submission {
	return models.Submission{
		ID:         id,
		Name:       "Guest",
		Message:    "Congratulations!",
		Attendance: models.AttendanceYes,
		Date:       "23.12.2025, 19:00",
	}
}

func ids(subs []models.Submission) []int64 {
	out := make([]int64, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func TestRemoteLoadOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRemote(newMemKV())
	for _, id := range []int64{5, 3, 9} {
		require.NoError(t, repo.Save(ctx, sub(id)))
	}

	subs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 5, 3}, ids(subs))
}

func TestRemoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRemote(newMemKV())
	want := models.Submission{
		ID:         1766502000000,
		Name:       "Aigerim",
		Message:    "Congratulations!",
		Attendance: models.AttendanceMaybe,
		Date:       "23.12.2025, 19:00",
	}
	require.NoError(t, repo.Save(ctx, want))

	subs, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, want, subs[0])
}

func TestRemoteLoadIsRepeatable(t *testing.T) {
	ctx := context.Background()
	repo := NewRemote(newMemKV())
	for _, id := range []int64{2, 7, 4, 1} {
		require.NoError(t, repo.Save(ctx, sub(id)))
	}

	first, err := repo.Load(ctx)
	require.NoError(t, err)
	second, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRemoteLoadRepeatedKeysYieldOneEntry(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	repo := NewRemote(kv)
	for _, id := range []int64{3, 8} {
		require.NoError(t, repo.Save(ctx, sub(id)))
	}
	kv.repeat = true

	subs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{8, 3}, ids(subs))
}

func TestRemoteLoadSkipsBrokenEntries(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	repo := NewRemote(kv)
	require.NoError(t, repo.Save(ctx, sub(1)))
	require.NoError(t, repo.Save(ctx, sub(2)))
	kv.data["submission:3"] = "{not json"
	kv.data["submission:4"] = ""
	kv.getErr["submission:2"] = errors.New("timeout")

	subs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(subs))
}

func TestRemoteLoadEmpty(t *testing.T) {
	subs, err := NewRemote(newMemKV()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestRemoteListFailure(t *testing.T) {
	kv := newMemKV()
	kv.listErr = errors.New("down")

	_, err := NewRemote(kv).Load(context.Background())
	assert.Error(t, err)
}

func TestRemoteSaveFailure(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("read only")

	err := NewRemote(kv).Save(context.Background(), sub(1))
	assert.ErrorIs(t, err, kv.setErr)
}

func TestLocalAppendsToSingleBlob(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	repo := NewLocal(kv)
	for _, id := range []int64{5, 3, 9} {
		require.NoError(t, repo.Save(ctx, sub(id)))
	}

	require.Len(t, kv.data, 1)
	var raw []models.Submission
	require.NoError(t, json.Unmarshal([]byte(kv.data[LocalKey]), &raw))
	assert.Equal(t, []int64{5, 3, 9}, ids(raw))

	subs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 5, 3}, ids(subs))
}

func TestLocalLoadMissingKey(t *testing.T) {
	subs, err := NewLocal(newMemKV()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestLocalLoadCorruptBlob(t *testing.T) {
	kv := newMemKV()
	kv.data[LocalKey] = "[{"

	_, err := NewLocal(kv).Load(context.Background())
	assert.Error(t, err)
}

func TestLocalOverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenLocal(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewLocal(store.NewSQLite(db))
	require.NoError(t, repo.Save(ctx, sub(10)))
	require.NoError(t, repo.Save(ctx, sub(20)))

	subs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 10}, ids(subs))
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	local := newMemKV()

	remote := newMemKV()
	_, ok := Select(ctx, remote, local).(*Remote)
	assert.True(t, ok, "reachable remote is used")

	remote.listErr = errors.New("no capability")
	_, ok = Select(ctx, remote, local).(*Local)
	assert.True(t, ok, "unreachable remote falls back to local")

	_, ok = Select(ctx, nil, local).(*Local)
	assert.True(t, ok, "missing remote falls back to local")
}

func TestSortNewestFirstStableOnTies(t *testing.T) {
	a, b := sub(7), sub(7)
	a.Name, b.Name = "first", "second"
	subs := []models.Submission{sub(1), a, sub(9), b}

	SortNewestFirst(subs)
	assert.Equal(t, []int64{9, 7, 7, 1}, ids(subs))
	assert.Equal(t, "first", subs[1].Name)
}
