package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("RESEND_API_KEY", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, BackendRedis, c.StoreBackend)
	assert.Equal(t, "wedding@resend.dev", c.Relay.From)
	assert.Equal(t, 10*time.Second, c.Relay.Timeout)
	assert.Equal(t, "kk", c.Event.DefaultLocale)
	assert.False(t, c.RelayConfigured())
}

func TestLoadRelayFromEnv(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("RELAY_TO", "host@example.com, second@example.com")
	t.Setenv("RELAY_TIMEOUT", "3s")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "re_test", c.Relay.APIKey)
	assert.Len(t, c.Relay.To, 2)
	assert.Equal(t, 3*time.Second, c.Relay.Timeout)
	assert.True(t, c.RelayConfigured())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestEventTarget(t *testing.T) {
	t.Setenv("EVENT_START", "2025-12-23T19:00:00")
	t.Setenv("EVENT_TIMEZONE", "UTC")

	c, err := Load()
	require.NoError(t, err)
	target, err := c.Event.Target()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 23, 19, 0, 0, 0, time.UTC), target)
}

func TestLoadRejectsBadEventStart(t *testing.T) {
	t.Setenv("EVENT_START", "tomorrow")

	_, err := Load()
	assert.Error(t, err)
}
