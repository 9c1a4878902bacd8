// Package pagecache keeps rendered pages for a fixed time-to-live.
//
// A cached page is served verbatim until its TTL lapses or it is cleared,
// even if the data it was rendered from has changed since.
package pagecache

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// State is the lifecycle of a cache entry.
type State int

const (
	Absent State = iota
	Fresh
	Expired
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Expired:
		return "expired"
	default:
		return "absent"
	}
}

// Store is the keyed byte store backing a Cache.
type Store interface {
	// Get reports ok=false when the key is absent or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// ComputeFunc renders a page on a cache miss.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache serves rendered pages out of a Store.
type Cache struct {
	store Store

	hits     atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

// GetOrCompute returns the stored page for key, or renders it with compute
// and stores the result for ttl. Store failures degrade to computing the page.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	if data, ok, err := c.store.Get(ctx, key); err == nil && ok {
		c.hits.Add(1)
		return data, nil
	} else if err != nil {
		c.failures.Add(1)
		logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
	}

	c.misses.Add(1)
	data, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.failures.Add(1)
		logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

// Peek reads key without counting a hit or a miss. Store errors read as absent.
func (c *Cache) Peek(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.failures.Add(1)
		logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, ok
}

// Put stores value under key for ttl; a failed write is only logged.
func (c *Cache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.failures.Add(1)
		logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear purges key and every variant of it stored as "<key>:<suffix>".
func (c *Cache) Clear(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return err
	}
	return c.store.DeletePrefix(ctx, key+":")
}

// VariantKey builds the key of one variant (e.g. one page number) of key.
func VariantKey(key, variant string) string { return key + ":" + variant }

// Stats counts cache outcomes since the Cache was created or reset.
type Stats struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Failures int64 `json:"failures"`
}

func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Failures: c.failures.Load()}
}

func (c *Cache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.failures.Store(0)
}

// NopStore never stores anything; every lookup recomputes.
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopStore) Delete(context.Context, ...string) error                  { return nil }
func (NopStore) DeletePrefix(context.Context, string) error               { return nil }
