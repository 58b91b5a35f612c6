package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"addressradar/internal/geo"
	"addressradar/platform/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "geocode:"

// CachedGeocoder is a read-through redis cache in front of a Geocoder.
// It does not change the one-call-per-lookup contract: every distinct address
// still triggers its own upstream request; only repeats within the TTL are
// short-circuited. Cache failures degrade to the wrapped geocoder.
type CachedGeocoder struct {
	next Geocoder
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

// NewCachedGeocoder wraps next with a redis-backed result cache.
func NewCachedGeocoder(next Geocoder, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, rdb: rdb, ttl: ttl, log: log}
}

// Geocode returns the cached coordinate for the address when present,
// otherwise delegates to the wrapped geocoder and stores the result.
// Only successful lookups are cached; not-found and failures pass through.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	key := cacheKey(address)

	raw, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var coord geo.Coordinate
		if err := json.Unmarshal([]byte(raw), &coord); err == nil {
			return coord, nil
		}
		// Unreadable entry: drop it and fall through to the upstream lookup.
		_ = c.rdb.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.log.CacheError("get", err)
	}

	coord, err := c.next.Geocode(ctx, address)
	if err != nil {
		return geo.Coordinate{}, err
	}

	if payload, err := json.Marshal(coord); err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.CacheError("set", err)
		}
	}

	return coord, nil
}

func cacheKey(address string) string {
	return cacheKeyPrefix + strings.ToLower(strings.Join(strings.Fields(address), " "))
}
