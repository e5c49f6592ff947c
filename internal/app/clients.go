package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/movalearn/movalearn-backend/internal/platform/env"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type Clients struct {
	Redis *redis.Client
}

// wireClients connects the optional external clients. Redis is used for
// the leaderboard cache; when it is unreachable the app runs without it.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: env.Get("REDIS_PASSWORD", "", log),
			DB:       env.GetInt("REDIS_DB", 0, log),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, leaderboard will use the database", "addr", cfg.RedisAddr, "error", err)
			_ = rdb.Close()
			rdb = nil
		}
	}

	return Clients{Redis: rdb}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
