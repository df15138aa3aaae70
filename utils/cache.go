// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"visionhealth/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client. When Redis cannot be reached
// the client stays nil and callers fall back to the database.
func InitCache(logger *zap.Logger) {
	if !config.AppConfig.CacheEnabled {
		logger.Info("Redis cache disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		_ = client.Close()
		return
	}
	CacheClient = client
}

// GetCacheClient returns the generic cache client, or nil when caching is off.
func GetCacheClient() *redis.Client {
	return CacheClient
}
