package rsvp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/relay"
	"wedding-rsvp/internal/repository"
	"wedding-rsvp/pkg/logger"
)

// DateLayout is the informational timestamp format shown to the host.
const DateLayout = "02.01.2006, 15:04"

// ErrNotStored marks a submission the store did not accept.
var ErrNotStored = errors.New("submission not stored")

// Invalidator drops whatever list view a write makes stale.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Publisher announces stored submissions to other processes.
type Publisher interface {
	Publish(ctx context.Context, ev models.SubmissionEvent) error
}

// Writer turns a form into a stored submission and one host alert.
type Writer struct {
	repo     repository.Repository
	notifier relay.Notifier
	events   Publisher
	cache    Invalidator
	loc      *time.Location
	now      func() time.Time

	mu     sync.Mutex
	lastID int64
}

// WriterOption customizes a Writer.
type WriterOption func(*Writer)

// WithPublisher announces every stored submission on p.
func WithPublisher(p Publisher) WriterOption {
	return func(w *Writer) { w.events = p }
}

// WithCache invalidates c every time a submission is stored. Pass the
// Loader so loads racing the write cannot cache the old list.
func WithCache(c Invalidator) WriterOption {
	return func(w *Writer) { w.cache = c }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) { w.now = now }
}

// WithLocation sets the zone submission dates are written in.
func WithLocation(loc *time.Location) WriterOption {
	return func(w *Writer) { w.loc = loc }
}

func NewWriter(repo repository.Repository, notifier relay.Notifier, opts ...WriterOption) *Writer {
	w := &Writer{
		repo:     repo,
		notifier: notifier,
		loc:      time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Build validates f and stamps a new submission with id and date.
// Ids come from the millisecond clock and never repeat within one Writer.
func (w *Writer) Build(f models.Form) (models.Submission, error) {
	f = Normalize(f)
	if err := Validate(f); err != nil {
		return models.Submission{}, err
	}
	now := w.now()
	return models.Submission{
		ID:         w.nextID(now),
		Name:       strings.TrimSpace(f.Name),
		Message:    strings.TrimSpace(f.Message),
		Attendance: f.Attendance,
		Date:       now.In(w.loc).Format(DateLayout),
	}, nil
}

func (w *Writer) nextID(now time.Time) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := now.UnixMilli()
	if id <= w.lastID {
		id = w.lastID + 1
	}
	w.lastID = id
	return id
}

// Submit stores the submission built from f and then sends exactly one
// host alert. A submission that was not stored is never announced.
//
// The returned submission is set whenever the store accepted it, even if
// the alert then failed (err wraps relay.ErrNotDelivered).
func (w *Writer) Submit(ctx context.Context, f models.Form) (models.Submission, error) {
	s, err := w.Build(f)
	if err != nil {
		return models.Submission{}, err
	}
	if err := w.repo.Save(ctx, s); err != nil {
		logger.Error(ctx, "Storing submission failed", "submission_id", s.ID, "error", err)
		return models.Submission{}, fmt.Errorf("%w: %v", ErrNotStored, err)
	}
	w.announce(ctx, s)

	if err := w.notifier.Notify(ctx, s); err != nil {
		if !errors.Is(err, relay.ErrNotDelivered) {
			err = fmt.Errorf("%w: %v", relay.ErrNotDelivered, err)
		}
		return s, err
	}
	return s, nil
}

// announce drops this process's cached list and tells other replicas.
func (w *Writer) announce(ctx context.Context, s models.Submission) {
	if w.cache != nil {
		w.cache.Invalidate(ctx)
	}
	if w.events == nil {
		return
	}
	if err := w.events.Publish(ctx, models.SubmissionEvent{Submission: s, RecordedAt: w.now()}); err != nil {
		logger.Warn(ctx, "Publishing submission event failed", "submission_id", s.ID, "error", err)
	}
}
