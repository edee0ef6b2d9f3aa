// Package rsvp is the submission pipeline: loading the recorded responses
// and accepting new ones.
package rsvp

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/repository"
	"wedding-rsvp/pkg/logger"
)

// ListCache holds the last loaded, sorted list.
type ListCache interface {
	Get(ctx context.Context) ([]models.Submission, bool)
	Set(ctx context.Context, subs []models.Submission)
	Invalidate(ctx context.Context)
}

const listFlight = "submissions"

// Loader rebuilds the newest-first list of recorded submissions.
type Loader struct {
	repo  repository.Repository
	cache ListCache
	group singleflight.Group
	// gen counts writes; a load that overlapped one never fills the cache.
	gen atomic.Uint64
}

// NewLoader builds a Loader. cache may be nil.
func NewLoader(repo repository.Repository, cache ListCache) *Loader {
	return &Loader{repo: repo, cache: cache}
}

// Load never fails: any error in the sequence yields an empty list and is only logged.
func (l *Loader) Load(ctx context.Context) []models.Submission {
	if l.cache != nil {
		if subs, ok := l.cache.Get(ctx); ok {
			return subs
		}
	}
	v, err, _ := l.group.Do(listFlight, func() (interface{}, error) {
		gen := l.gen.Load()
		subs, err := l.repo.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if l.cache != nil && l.gen.Load() == gen {
			l.cache.Set(ctx, subs)
		}
		return subs, nil
	})
	if err != nil {
		logger.Warn(ctx, "Loading submissions failed", "error", err)
		return []models.Submission{}
	}
	subs := v.([]models.Submission)
	out := make([]models.Submission, len(subs))
	copy(out, subs)
	return out
}

// Invalidate drops the cached list after a write. Loads already in flight
// still answer their callers but do not repopulate the cache, and the next
// Load starts a fresh read.
func (l *Loader) Invalidate(ctx context.Context) {
	l.gen.Add(1)
	l.group.Forget(listFlight)
	if l.cache != nil {
		l.cache.Invalidate(ctx)
	}
}
