// Package countdown projects the time left until the event.
package countdown

import (
	"context"
	"time"
)

// Remaining is the time left, split with fixed radix (24h, 60m, 60s).
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Zero reports whether the target has been reached.
func (r Remaining) Zero() bool {
	return r == Remaining{}
}

// Decompose splits d into whole days, hours, minutes and seconds.
// Negative durations clamp to zero.
func Decompose(d time.Duration) Remaining {
	if d <= 0 {
		return Remaining{}
	}
	total := int64(d / time.Second)
	return Remaining{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// Until returns the time left from now to target.
func Until(target, now time.Time) Remaining {
	return Decompose(target.Sub(now))
}

// Run calls fn immediately and then every interval until ctx is done.
// It stops on its own once the target is reached.
func Run(ctx context.Context, target time.Time, now func() time.Time, interval time.Duration, fn func(Remaining)) {
	r := Until(target, now())
	fn(r)
	if r.Zero() {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r = Until(target, now())
			fn(r)
			if r.Zero() {
				return
			}
		}
	}
}
