package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/maldives-travel-platform/internal/config"
	"github.com/wolfman30/maldives-travel-platform/internal/drafts"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildDraftSlots returns Redis-backed draft slots, or in-memory slots when
// Redis is unavailable. Memory slots do not survive a restart and are only
// acceptable outside production.
func BuildDraftSlots(client *redis.Client, cfg *appconfig.Config, logger *logging.Logger) drafts.Slots {
	if logger == nil {
		logger = logging.Default()
	}
	if client == nil {
		env := ""
		if cfg != nil {
			env = cfg.Env
		}
		logger.Warn("redis unavailable, wizard drafts are kept in memory", "env", env)
		return drafts.NewMemorySlots()
	}
	ttl := drafts.DefaultTTL
	if cfg != nil && cfg.DraftTTL > 0 {
		ttl = cfg.DraftTTL
	}
	return drafts.NewRedisSlots(client, ttl)
}
