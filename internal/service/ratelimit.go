package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
)

// RateLimiter allows at most a fixed number of generations per client
// within a window. Counting is best effort: concurrent requests may both
// read the same count before either writes it back.
type RateLimiter struct {
	store    domain.Cache
	requests int
	window   time.Duration
}

func NewRateLimiter(store domain.Cache, cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		store:    store,
		requests: cfg.Requests,
		window:   cfg.Window,
	}
}

// Enabled reports whether the limiter can ever reject a request.
func (r *RateLimiter) Enabled() bool {
	return r != nil && r.store != nil && r.requests > 0 && r.window > 0
}

// IsLimited reports whether clientID has used up its allowance. When it has
// not, the request is counted and the counter's expiry restarts at the window.
// Store failures never reject a request.
func (r *RateLimiter) IsLimited(ctx context.Context, clientID string) bool {
	if !r.Enabled() || clientID == "" {
		return false
	}

	l := logger.Get()
	key := cache.RateLimitKey(clientID)

	count := 0
	val, err := r.store.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrCacheMiss):
	case err != nil:
		l.Warn("Rate limit store read failed, allowing request", zap.Error(err), zap.String("client", clientID))
		return false
	default:
		if count, err = strconv.Atoi(val); err != nil {
			l.Warn("Rate limit counter is not a number, resetting", zap.String("client", clientID), zap.String("value", val))
			count = 0
		}
	}

	if count >= r.requests {
		l.Info("Rate limit exceeded", zap.String("client", clientID), zap.Int("count", count))
		return true
	}

	if err := r.store.Set(ctx, key, strconv.Itoa(count+1), r.window); err != nil {
		l.Warn("Rate limit store write failed", zap.Error(err), zap.String("client", clientID))
	}
	return false
}
