package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/pkg/logger"
)

const submissionsCacheKey = "submissions:sorted"

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use).
// It is nil when Redis cannot be reached.
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		c := redis.NewClient(opts)
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx, "Redis ping failed", "error", err)
			_ = c.Close()
			return
		}
		client = c
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

// Submissions caches the sorted submission list. A nil client disables it.
type Submissions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSubmissions(c *redis.Client, ttl time.Duration) *Submissions {
	return &Submissions{client: c, ttl: ttl}
}

// Get reads the cached list. Returns (nil, false) on miss or error.
func (s *Submissions) Get(ctx context.Context) ([]models.Submission, bool) {
	if s == nil || s.client == nil {
		return nil, false
	}
	b, err := s.client.Get(ctx, submissionsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get submissions failed", "error", err)
		return nil, false
	}
	var subs []models.Submission
	if err := json.Unmarshal(b, &subs); err != nil {
		logger.Debug(ctx, "Redis unmarshal submissions failed", "error", err)
		return nil, false
	}
	return subs, true
}

// Set writes the list with the configured TTL.
func (s *Submissions) Set(ctx context.Context, subs []models.Submission) {
	if s == nil || s.client == nil {
		return
	}
	b, err := json.Marshal(subs)
	if err != nil {
		logger.Debug(ctx, "Marshal submissions for cache failed", "error", err)
		return
	}
	if err := s.client.Set(ctx, submissionsCacheKey, b, s.ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set submissions failed", "error", err)
	}
}

// Invalidate deletes the cached list so the next read goes to the store.
func (s *Submissions) Invalidate(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.Del(ctx, submissionsCacheKey).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate submissions failed", "error", err)
	}
}
