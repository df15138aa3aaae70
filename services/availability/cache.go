package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"visionhealth/models"

	"github.com/go-redis/redis/v8"
)

const (
	cachePrefix = "availability:"
	genKey      = cachePrefix + "gen"
	verPrefix   = cachePrefix + "ver:"
	dataPrefix  = cachePrefix + "data:"
)

// ErrCacheMiss is returned by Cache.Get when no entry exists for a date.
var ErrCacheMiss = errors.New("availability cache miss")

// Cache stores computed availability per appointment date. Entries are stamped
// with the version read before the bookings were loaded; invalidation moves the
// version on, so an entry computed from an older snapshot is never served.
type Cache interface {
	Version(ctx context.Context, date string) (string, error)
	Get(ctx context.Context, date, version string) ([]models.AppointmentService, error)
	Set(ctx context.Context, date, version string, services []models.AppointmentService) error
	Invalidate(ctx context.Context, date string) error
	InvalidateAll(ctx context.Context) error
}

// RedisCache is a Cache backed by go-redis. Each date has a counter under
// availability:ver:<date> and the catalog has one under availability:gen; data
// lives under availability:data:<date>:<gen>.<ver>.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	verTTL time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	// Version counters must outlive every entry stamped with them.
	verTTL := 10 * ttl
	if verTTL < time.Hour {
		verTTL = time.Hour
	}
	return &RedisCache{client: client, ttl: ttl, verTTL: verTTL}
}

func verKey(date string) string {
	return verPrefix + date
}

func dataKey(date, version string) string {
	return dataPrefix + date + ":" + version
}

func counter(v interface{}) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return "0"
}

func (c *RedisCache) Version(ctx context.Context, date string) (string, error) {
	vals, err := c.client.MGet(ctx, genKey, verKey(date)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read availability version: %w", err)
	}
	return counter(vals[0]) + "." + counter(vals[1]), nil
}

func (c *RedisCache) Get(ctx context.Context, date, version string) ([]models.AppointmentService, error) {
	raw, err := c.client.Get(ctx, dataKey(date, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read availability cache: %w", err)
	}
	var services []models.AppointmentService
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, fmt.Errorf("failed to decode cached availability: %w", err)
	}
	return services, nil
}

func (c *RedisCache) Set(ctx context.Context, date, version string, services []models.AppointmentService) error {
	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}
	return c.client.Set(ctx, dataKey(date, version), data, c.ttl).Err()
}

// Invalidate moves date to a new version. Entries under the old one are left to
// expire.
func (c *RedisCache) Invalidate(ctx context.Context, date string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, verKey(date))
		pipe.Expire(ctx, verKey(date), c.verTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate availability for %s: %w", date, err)
	}
	return nil
}

// InvalidateAll moves every date to a new version, used when the catalog
// changes, then drops the data entries it can find.
func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		return fmt.Errorf("failed to bump availability generation: %w", err)
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, dataPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan availability cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
