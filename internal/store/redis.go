package store

import (
	"github.com/gofiber/storage/redis/v3"
)

type RedisConfig struct {
	URL         string
	PoolSize    int
	ClusterMode bool
}

// NewRedisStorage connects to redis. Sessions, lockout records and limiter
// counters put there are shared by every server process.
func NewRedisStorage(cfg RedisConfig) *redis.Storage {
	return redis.New(redis.Config{
		URL:           cfg.URL,
		PoolSize:      cfg.PoolSize,
		IsClusterMode: cfg.ClusterMode,
	})
}
