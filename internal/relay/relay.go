// Package relay alerts the host about every accepted submission.
//
// Delivery is best effort: one attempt, no retry, no queue. Every failure
// (transport error, rejected request, bad credentials, quota) collapses
// into ErrNotDelivered so callers never see provider detail.
package relay

import (
	"context"
	"errors"
	"fmt"

	"wedding-rsvp/internal/models"
)

// ErrNotDelivered is the single failure signal of a notification attempt.
var ErrNotDelivered = errors.New("notification not delivered")

// Notifier sends one host alert for a submission.
type Notifier interface {
	Notify(ctx context.Context, s models.Submission) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, s models.Submission) error

func (f NotifierFunc) Notify(ctx context.Context, s models.Submission) error {
	return f(ctx, s)
}

func notDelivered(cause error) error {
	return fmt.Errorf("%w: %v", ErrNotDelivered, cause)
}
