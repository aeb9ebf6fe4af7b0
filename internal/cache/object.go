// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// object.go provides a Valkey-backed JSON object cache. Stores write
// through to it after every successful database read so that a transient
// database outage degrades to slightly stale data instead of an error.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultObjectTTL is how long a cached object stays valid. Long enough to
// ride out a database restart, short enough that stale reads stay harmless.
const DefaultObjectTTL = 10 * time.Minute

// ObjectCache stores JSON-encoded domain objects in Valkey under typed keys.
type ObjectCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewObjectCache creates an object cache backed by the given Valkey client.
// A nil client yields a cache where every read misses and writes are no-ops,
// so callers never need to branch on cache availability.
func NewObjectCache(client *redis.Client, ttl time.Duration) *ObjectCache {
	if ttl == 0 {
		ttl = DefaultObjectTTL
	}
	return &ObjectCache{client: client, ttl: ttl}
}

// GetJSON loads the object stored under key into dst. Returns false on miss,
// decode failure, or when no cache is configured.
func (oc *ObjectCache) GetJSON(ctx context.Context, key string, dst any) bool {
	if oc == nil || oc.client == nil {
		return false
	}
	val, err := oc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("object cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("object cache decode error", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON stores src under key with the configured TTL, best-effort.
func (oc *ObjectCache) SetJSON(ctx context.Context, key string, src any) {
	if oc == nil || oc.client == nil {
		return
	}
	val, err := json.Marshal(src)
	if err != nil {
		slog.Warn("object cache encode error", "key", key, "error", err)
		return
	}
	if err := oc.client.Set(ctx, key, val, oc.ttl).Err(); err != nil {
		slog.Warn("object cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a key, best-effort.
func (oc *ObjectCache) Invalidate(ctx context.Context, key string) {
	if oc == nil || oc.client == nil {
		return
	}
	if err := oc.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("object cache invalidate error", "key", key, "error", err)
	}
}

// BrandKey is the cache key of the singleton brand profile.
func BrandKey() string { return "brand:profile" }

// UsageKey returns the cache key for one day's usage counters.
func UsageKey(date string) string { return "usage:" + date }
