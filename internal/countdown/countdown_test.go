package countdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	tests := map[string]struct {
		in   time.Duration
		want Remaining
	}{
		"one of each":  {in: 90061 * time.Second, want: Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}},
		"sub-second":   {in: 999 * time.Millisecond, want: Remaining{}},
		"exact day":    {in: 24 * time.Hour, want: Remaining{Days: 1}},
		"past clamps":  {in: -5 * time.Minute, want: Remaining{}},
		"long way off": {in: 400*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second, want: Remaining{Days: 400, Hours: 23, Minutes: 59, Seconds: 59}},
		"zero is zero": {in: 0, want: Remaining{}},
		"just minutes": {in: 61 * time.Second, want: Remaining{Minutes: 1, Seconds: 1}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decompose(tc.in))
		})
	}
}

func TestUntil(t *testing.T) {
	now := time.Date(2025, 12, 22, 17, 58, 59, 0, time.UTC)
	target := now.Add(90061 * time.Second)
	assert.Equal(t, Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, Until(target, now))
	assert.True(t, Until(now, target).Zero())
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	target := time.Now().Add(time.Hour)

	var mu sync.Mutex
	var ticks int
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, target, time.Now, 5*time.Millisecond, func(Remaining) {
			mu.Lock()
			ticks++
			mu.Unlock()
		})
	}()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ticks >= 3
	}, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsWhenTargetPassed(t *testing.T) {
	var got []Remaining
	Run(context.Background(), time.Now().Add(-time.Minute), time.Now, time.Hour, func(r Remaining) {
		got = append(got, r)
	})
	assert.Equal(t, []Remaining{{}}, got)
}
