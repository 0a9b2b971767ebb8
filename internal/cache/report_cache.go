// Package cache is a thin Redis-backed cache for report payloads. Reports
// tolerate snapshot staleness, so cached copies are served for a short TTL;
// any cache failure degrades to querying the database directly.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates a new Redis client.
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	log.Printf("Redis client created (addr: %s)", addr)
	return rdb
}

type ReportCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// New builds a report cache. A nil client disables caching entirely.
func New(rdb *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl, prefix: "reports"}
}

func (c *ReportCache) Key(parts ...string) string {
	return c.prefix + ":" + strings.Join(parts, ":")
}

// Get unmarshals the cached payload into dest and reports whether it was a
// hit. Misses and transport errors both come back false.
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[cache] decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *ReportCache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[cache] encode %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
}

// Invalidate drops every key under the report prefix. Used after seeding or
// provisioning, when cached report payloads are known stale.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[cache] del %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[cache] scan: %v", err)
	}
}
