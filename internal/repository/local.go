package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/store"
)

// LocalKey is the single key holding every submission in the local layout.
const LocalKey = "submissions"

// Local keeps all submissions as one JSON array.
type Local struct {
	kv store.KV
	mu sync.Mutex
}

func NewLocal(kv store.KV) *Local {
	return &Local{kv: kv}
}

// Load reads the whole array in one shot. A missing key is an empty list.
func (l *Local) Load(ctx context.Context) ([]models.Submission, error) {
	subs, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(subs)
	return subs, nil
}

func (l *Local) read(ctx context.Context) ([]models.Submission, error) {
	v, ok, err := l.kv.Get(ctx, LocalKey)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", LocalKey, err)
	}
	if !ok || v == "" {
		return []models.Submission{}, nil
	}
	var subs []models.Submission
	if err := json.Unmarshal([]byte(v), &subs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", LocalKey, err)
	}
	return subs, nil
}

// Save appends s to the array. Writers in this process are serialized.
func (l *Local) Save(ctx context.Context, s models.Submission) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	subs, err := l.read(ctx)
	if err != nil {
		return err
	}
	subs = append(subs, s)
	b, err := json.Marshal(subs)
	if err != nil {
		return err
	}
	if err := l.kv.Set(ctx, LocalKey, string(b)); err != nil {
		return fmt.Errorf("set %s: %w", LocalKey, err)
	}
	return nil
}
