package snapshot

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/redis/go-redis/v9"

	"github.com/antigravity/transit-raptor/internal/feed"
)

// RedisCache is an optional distributed alternative to the local disk
// cache: useful when several instances share one feed and want to
// avoid every one of them re-parsing it independently on restart.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache connects to addr (host:port) and stores blobs under
// key with the given TTL.
func NewRedisCache(addr, key string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
		ttl:    ttl,
	}
}

// Write scans source and stores the result in Redis.
func (c *RedisCache) Write(ctx context.Context, source feed.Source) error {
	stops, err := source.Stops(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: redis cache: reading stops: %w", err)
	}
	trips, err := source.Trips(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: redis cache: reading trips: %w", err)
	}
	transfers, err := source.Transfers(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: redis cache: reading transfers: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(diskFeed{Stops: stops, Trips: trips, Transfers: transfers}); err != nil {
		return fmt.Errorf("snapshot: redis cache: encoding: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("snapshot: redis cache: closing gzip writer: %w", err)
	}

	if err := c.client.Set(ctx, c.key, buf.Bytes(), c.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot: redis cache: writing key %s: %w", c.key, err)
	}
	return nil
}

// Read fetches and decodes a previously written blob. It returns
// redis.Nil (wrapped) when nothing is cached yet.
func (c *RedisCache) Read(ctx context.Context) (feed.Source, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("snapshot: redis cache: reading key %s: %w", c.key, err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("snapshot: redis cache: opening gzip reader: %w", err)
	}
	defer gz.Close()

	var d diskFeed
	if err := gob.NewDecoder(gz).Decode(&d); err != nil {
		return nil, fmt.Errorf("snapshot: redis cache: decoding: %w", err)
	}
	return cachedSource{d: d}, nil
}
