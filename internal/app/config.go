package app

import (
	"github.com/movalearn/movalearn-backend/internal/platform/env"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string
	Addr        string
	CORSOrigins string
	RedisAddr   string
	SeedOnBoot  bool
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		ServiceName: env.Get("SERVICE_NAME", "movalearn-backend", log),
		Environment: env.Get("APP_ENV", "development", log),
		Version:     env.Get("APP_VERSION", "dev", log),
		Addr:        ":" + env.Get("PORT", "8080", log),
		CORSOrigins: env.Get("CORS_ORIGINS", "", log),
		RedisAddr:   env.Get("REDIS_ADDR", "", log),
		SeedOnBoot:  env.GetBool("SEED_ON_BOOT", true, log),
	}
}
