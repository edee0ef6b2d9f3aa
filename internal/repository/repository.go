// Package repository reads and writes submissions through a store.KV.
//
// Two layouts exist. Remote keeps one key per submission and enumerates
// them by prefix; Local keeps every submission in one JSON array under a
// single key, the way a browser's localStorage fallback did. Which one is
// used is decided once at startup by Select.
package repository

import (
	"context"
	"sort"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/store"
	"wedding-rsvp/pkg/logger"
)

// Repository loads and saves submissions.
type Repository interface {
	// Load returns every readable submission, newest first.
	Load(ctx context.Context) ([]models.Submission, error)
	// Save records a new submission.
	Save(ctx context.Context, s models.Submission) error
}

// SortNewestFirst orders subs by descending id. Equal ids keep their input order.
func SortNewestFirst(subs []models.Submission) {
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].ID > subs[j].ID })
}

// Select returns Remote over remote when it answers a listing, otherwise Local over local.
func Select(ctx context.Context, remote store.KV, local store.KV) Repository {
	if remote != nil {
		_, err := remote.List(ctx, models.KeyPrefix)
		if err == nil {
			logger.Info(ctx, "Using remote submission store")
			return NewRemote(remote)
		}
		logger.Warn(ctx, "Remote submission store unavailable; falling back to local", "error", err)
	}
	return NewLocal(local)
}
