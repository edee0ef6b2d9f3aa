package page

import (
	"context"
	"errors"
	"time"

	"golang.org/x/text/language"

	"wedding-rsvp/internal/countdown"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/rsvp"
	"wedding-rsvp/pkg/logger"
)

// Loader supplies the recorded submissions, newest first.
type Loader interface {
	Load(ctx context.Context) []models.Submission
}

// Submitter accepts one form.
type Submitter interface {
	Submit(ctx context.Context, f models.Form) (models.Submission, error)
}

// Controller runs the page's side effects and folds their results into State.
type Controller struct {
	loader Loader
	writer Submitter
	target time.Time
	now    func() time.Time
}

func NewController(loader Loader, writer Submitter, target time.Time, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{loader: loader, writer: writer, target: target, now: now}
}

// Open builds the state of a freshly opened page.
func (c *Controller) Open(ctx context.Context, tag language.Tag) State {
	s := Initial(tag)
	s = Reduce(s, Ticked{Remaining: c.Countdown()})
	return Reduce(s, LoadFinished{Submissions: c.loader.Load(ctx)})
}

// Now reads the controller's clock.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Countdown is the time left right now.
func (c *Controller) Countdown() countdown.Remaining {
	return countdown.Until(c.target, c.now())
}

// Submit sends s.Form once and returns the resulting state. On failure the
// form is left as the guest typed it.
func (c *Controller) Submit(ctx context.Context, s State) State {
	s = Reduce(s, SubmitStarted{})
	sub, err := c.writer.Submit(ctx, s.Form)
	switch {
	case err == nil:
		return Reduce(s, SubmitSucceeded{Submission: sub})
	case errors.Is(err, rsvp.ErrInvalid):
		logger.Debug(ctx, "Submission rejected", "error", err)
		return Reduce(s, SubmitRejected{})
	default:
		logger.Warn(ctx, "Submission failed", "error", err)
		return Reduce(s, SubmitFailed{})
	}
}
