package docstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Cache is the subset of the Redis cache the store decorator needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Cached wraps a Store with a short-TTL Redis read cache. Cache failures are
// logged and treated as misses; the bucket remains the source of truth.
type Cached[T any] struct {
	*Store[T]
	cache Cache
	ttl   time.Duration
}

// NewCached decorates store with cache. A nil cache yields a passthrough.
func NewCached[T any](store *Store[T], cache Cache, ttl time.Duration) *Cached[T] {
	return &Cached[T]{Store: store, cache: cache, ttl: ttl}
}

func (c *Cached[T]) cacheKey(slug string) string {
	return "doc:" + c.family.Prefix + ":" + slug
}

// Get serves from cache when possible, otherwise reads through and caches
// the result.
func (c *Cached[T]) Get(ctx context.Context, slug string) (T, error) {
	if c.cache == nil {
		return c.Store.Get(ctx, slug)
	}

	var doc T
	if err := c.cache.GetJSON(ctx, c.cacheKey(slug), &doc); err == nil {
		return doc, nil
	}

	doc, err := c.Store.Get(ctx, slug)
	if err != nil {
		return doc, err
	}
	if err := c.cache.SetJSON(ctx, c.cacheKey(slug), doc, c.ttl); err != nil {
		log.Warnf("failed to cache %s: %v", c.cacheKey(slug), err)
	}
	return doc, nil
}

// Put writes through and invalidates the cached entry.
func (c *Cached[T]) Put(ctx context.Context, doc T) error {
	if err := c.Store.Put(ctx, doc); err != nil {
		return err
	}
	c.invalidate(ctx, c.family.SlugOf(doc))
	return nil
}

// Delete removes the document and invalidates the cached entry.
func (c *Cached[T]) Delete(ctx context.Context, slug string) error {
	if err := c.Store.Delete(ctx, slug); err != nil {
		return err
	}
	c.invalidate(ctx, slug)
	return nil
}

func (c *Cached[T]) invalidate(ctx context.Context, slug string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, c.cacheKey(slug)); err != nil {
		log.Warnf("failed to invalidate %s: %v", c.cacheKey(slug), err)
	}
}
