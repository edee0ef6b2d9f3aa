package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"wedding-rsvp/pkg/logger"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendLocal    = "local"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	StoreBackend   string `env:"STORE_BACKEND" envDefault:"redis"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DBPoolSize     int    `env:"DB_POOL_SIZE" envDefault:"20"`
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPoolSize  int    `env:"REDIS_POOL_SIZE" envDefault:"50"`
	LocalStorePath string `env:"LOCAL_STORE_PATH" envDefault:"rsvp.db"`
	CacheTTL       int    `env:"CACHE_TTL_SEC" envDefault:"60"` // seconds

	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic      string   `env:"KAFKA_SUBMISSION_TOPIC" envDefault:"rsvp-submissions"`
	KafkaPartitions int      `env:"KAFKA_PARTITIONS" envDefault:"1"`

	JWTSecret string `env:"JWT_SECRET"`

	Relay Relay
	Event Event

	OTELEndpoint string `env:"OTEL_EXPORTER_ENDPOINT"`
}

// Relay configures the host notification.
type Relay struct {
	// URL of a remote /api/send-email route. Empty means the in-process mailer.
	URL      string        `env:"RELAY_URL"`
	APIKey   string        `env:"RESEND_API_KEY"`
	Endpoint string        `env:"RESEND_ENDPOINT" envDefault:"https://api.resend.com/emails"`
	From     string        `env:"RELAY_FROM" envDefault:"wedding@resend.dev"`
	To       []string      `env:"RELAY_TO" envSeparator:","`
	Locale   string        `env:"RELAY_LOCALE" envDefault:"kk"`
	Timeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`
}

// Event describes the single celebrated event.
type Event struct {
	Start         string `env:"EVENT_START" envDefault:"2025-12-23T19:00:00"`
	TimeZone      string `env:"EVENT_TIMEZONE" envDefault:"Asia/Almaty"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"kk"`
}

// Location returns the event time zone, UTC when it cannot be loaded.
func (e Event) Location() *time.Location {
	loc, err := time.LoadLocation(e.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Target returns the instant the countdown runs to.
func (e Event) Target() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", e.Start, e.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse EVENT_START: %w", err)
	}
	return t, nil
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Load parses a fresh Config from the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch c.StoreBackend {
	case BackendRedis, BackendPostgres, BackendLocal:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if _, err := c.Event.Target(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the application config (loads once from env).
// An invalid environment is logged and replaced by defaults.
func Get() *Config {
	cfgOnce.Do(func() {
		c, err := Load()
		if err != nil {
			logger.Error(context.Background(), "Invalid configuration; using defaults", "error", err)
			c = &Config{}
			_ = env.ParseWithOptions(c, env.Options{Environment: map[string]string{}})
		}
		cfg = c
	})
	return cfg
}

// RelayConfigured reports whether the in-process mailer has everything it needs.
func (c *Config) RelayConfigured() bool {
	return c.Relay.APIKey != "" && len(c.Relay.To) > 0
}
