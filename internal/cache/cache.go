package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pricegenie/backend/internal/pricing"
)

// GenieCache stores recommendation payloads keyed by prompt fingerprint.
type GenieCache interface {
	Get(ctx context.Context, key string) (*pricing.GenieSuggestionPayload, bool, error)
	Set(ctx context.Context, key string, value *pricing.GenieSuggestionPayload, ttl time.Duration) error
}

type NoopGenieCache struct{}

func (NoopGenieCache) Get(_ context.Context, _ string) (*pricing.GenieSuggestionPayload, bool, error) {
	return nil, false, nil
}

func (NoopGenieCache) Set(_ context.Context, _ string, _ *pricing.GenieSuggestionPayload, _ time.Duration) error {
	return nil
}

// MemoryGenieCache is an in-process cache used when no Redis address is set.
type MemoryGenieCache struct {
	items *gocache.Cache
}

func NewMemoryGenieCache(defaultTTL time.Duration) *MemoryGenieCache {
	return &MemoryGenieCache{items: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (c *MemoryGenieCache) Get(_ context.Context, key string) (*pricing.GenieSuggestionPayload, bool, error) {
	val, ok := c.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	payload, ok := val.(*pricing.GenieSuggestionPayload)
	if !ok {
		return nil, false, nil
	}
	return payload.Clone(), true, nil
}

func (c *MemoryGenieCache) Set(_ context.Context, key string, value *pricing.GenieSuggestionPayload, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	c.items.Set(key, value.Clone(), ttl)
	return nil
}
