package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cacheVersionKey = "catalog:version"
	// DefaultCacheTTL bounds staleness of cached catalog reads.
	DefaultCacheTTL = 5 * time.Minute
)

// CacheManager is a versioned Redis cache over the read-heavy catalog
// endpoints. Every write bumps the version, orphaning all cached entries
// at once. Redis being down only produces cache misses.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(rc *redis.Client) *CacheManager {
	return &CacheManager{redis: rc, ttl: DefaultCacheTTL}
}

// Get returns the cached JSON payload for key, if any.
func (cm *CacheManager) Get(ctx context.Context, key string) ([]byte, bool) {
	version, err := cm.getVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}
	payload, err := cm.redis.Get(ctx, cm.versionedKey(version, key)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetAsync caches a response payload without holding up the request.
func (cm *CacheManager) SetAsync(key string, payload interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}
		data, err := json.Marshal(payload)
		if err != nil {
			zap.L().Warn("failed to marshal payload for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.versionedKey(version, key), data, cm.ttl).Err(); err != nil {
			zap.L().Warn("failed to cache catalog payload", zap.String("key", key), zap.Error(err))
		}
	}()
}

// Invalidate orphans every cached catalog entry by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if _, err := cm.redis.Incr(ctx, cacheVersionKey).Result(); err != nil {
		zap.L().Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

func (cm *CacheManager) versionedKey(version int64, key string) string {
	return fmt.Sprintf("catalog:v:%d:%s", version, key)
}

func (cm *CacheManager) getVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return version, err
}
