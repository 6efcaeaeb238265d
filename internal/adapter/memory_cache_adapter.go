package adapter

import (
	"context"
	"time"

	"quizcraft/internal/domain"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = time.Minute

// MemoryCache is a process-local domain.Cache for running without Redis.
// Expired entries are hidden on read and purged by go-cache's janitor.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, memoryCleanupInterval)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return "", domain.ErrCacheMiss
	}
	s, ok := v.(string)
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return s, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	m.store.Set(key, value, expiration)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}
