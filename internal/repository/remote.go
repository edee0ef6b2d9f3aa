package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/store"
	"wedding-rsvp/pkg/logger"
)

// Remote keeps one key per submission.
type Remote struct {
	kv store.KV
}

func NewRemote(kv store.KV) *Remote {
	return &Remote{kv: kv}
}

// Load lists submission keys and fetches each distinct key once. Entries
// that cannot be fetched or decoded are skipped.
func (r *Remote) Load(ctx context.Context) ([]models.Submission, error) {
	keys, err := r.kv.List(ctx, models.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	subs := make([]models.Submission, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		v, ok, err := r.kv.Get(ctx, key)
		if err != nil {
			logger.Warn(ctx, "Submission fetch failed", "key", key, "error", err)
			continue
		}
		if !ok || v == "" {
			logger.Debug(ctx, "Submission key vanished", "key", key)
			continue
		}
		var s models.Submission
		if err := json.Unmarshal([]byte(v), &s); err != nil {
			logger.Warn(ctx, "Submission decode failed", "key", key, "error", err)
			continue
		}
		subs = append(subs, s)
	}
	SortNewestFirst(subs)
	return subs, nil
}

// Save writes s under its own key.
func (r *Remote) Save(ctx context.Context, s models.Submission) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, s.Key(), string(b)); err != nil {
		return fmt.Errorf("set %s: %w", s.Key(), err)
	}
	return nil
}
