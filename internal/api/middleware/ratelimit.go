package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"vahcare-api/internal/config"
	"vahcare-api/internal/logging"
	"vahcare-api/pkg/models"
)

// Limiter answers whether a client key may submit right now. Backends
// must fail open: a broken limiter store should never block intake.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// NewLimiter selects the configured rate-limit backend for one
// submission scope (e.g. "apply", "contact").
func NewLimiter(cfg *config.Config, scope string, max int, window time.Duration) Limiter {
	if cfg.RateLimit.Backend == "redis" {
		return newRedisLimiter(cfg, scope, max, window)
	}
	return newMemoryLimiter(max, window)
}

// RateLimit rejects requests over the per-IP budget with the standard
// 429 payload.
func RateLimit(limiter Limiter, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.Request().Context(), c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse(message))
			}
			return next(c)
		}
	}
}

// --- in-memory backend ---

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter keeps one token bucket per client IP and evicts idle
// entries so the map cannot grow without bound.
type memoryLimiter struct {
	max     int
	window  time.Duration
	clients map[string]*clientLimiter
	mu      sync.Mutex
}

func newMemoryLimiter(max int, window time.Duration) *memoryLimiter {
	m := &memoryLimiter{
		max:     max,
		window:  window,
		clients: make(map[string]*clientLimiter),
	}
	go m.cleanupRoutine()
	return m
}

func (m *memoryLimiter) Allow(ctx context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, ok := m.clients[key]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(m.window/time.Duration(m.max)), m.max),
		}
		m.clients[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (m *memoryLimiter) cleanupRoutine() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * m.window)
		m.mu.Lock()
		for key, client := range m.clients {
			if client.lastSeen.Before(cutoff) {
				delete(m.clients, key)
			}
		}
		m.mu.Unlock()
	}
}

// --- redis backend ---

// redisLimiter implements a fixed-window counter shared across replicas.
type redisLimiter struct {
	client *redis.Client
	scope  string
	max    int
	window time.Duration
	logger logging.Logger
}

func newRedisLimiter(cfg *config.Config, scope string, max int, window time.Duration) *redisLimiter {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return &redisLimiter{
		client: redis.NewClient(opts),
		scope:  scope,
		max:    max,
		window: window,
		logger: logging.GetGlobalLogger(),
	}
}

func (r *redisLimiter) Allow(ctx context.Context, key string) bool {
	window := time.Now().Unix() / int64(r.window.Seconds())
	counterKey := fmt.Sprintf("ratelimit:%s:%s:%d", r.scope, key, window)

	count, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		r.logger.Warn("Rate limit backend unavailable, allowing request", map[string]interface{}{
			"scope": r.scope,
			"error": err.Error(),
		})
		return true
	}
	if count == 1 {
		r.client.Expire(ctx, counterKey, r.window)
	}
	return count <= int64(r.max)
}
