package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Cache failures are logged, never returned to clients
)

// Cache is a JSON read-through cache over Redis. A nil client disables it.
type Cache struct {
	rdb *redis.Client // Redis client, may be nil
	ttl time.Duration // Default entry lifetime
}

// NewCache wraps a Redis client
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// EventKey is the cache key of one event
func EventKey(eventID uint) string {
	return "event:" + strconv.FormatUint(uint64(eventID), 10)
}

// ReviewSummaryKey is the cache key of an event's review summary
func ReviewSummaryKey(eventID uint) string {
	return "event:" + strconv.FormatUint(uint64(eventID), 10) + ":reviews:summary"
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false // Caching disabled
	}
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false // Key does not exist
	} else if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("cache get failed")
		return false // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false // Stale or foreign payload
	}
	return true
}

// Set stores a value in Redis with the default TTL
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("cache set failed")
	}
}

// Delete removes keys from Redis
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err.Error()}).Warn("cache delete failed")
	}
}
