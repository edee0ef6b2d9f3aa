package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingCache struct{ n int }

func (c *countingCache) Invalidate(context.Context) { c.n++ }

func TestHandleMessage(t *testing.T) {
	tests := map[string]struct {
		payload     string
		wantErr     bool
		invalidated int
	}{
		"valid event": {
			payload:     `{"submission":{"id":7,"name":"Aigerim","message":"Hi","attendance":"yes","date":"01.12.2025, 19:30"},"recorded_at":"2025-12-01T14:30:00Z"}`,
			invalidated: 1,
		},
		"malformed json": {payload: `{"submission":`, wantErr: true},
		"missing id":     {payload: `{"submission":{"name":"x"}}`, wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := &countingCache{}
			err := handleMessage(context.Background(), c, []byte(tc.payload))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.invalidated, c.n)
		})
	}
}
