package app

import (
	"time"

	"github.com/twobeats/twobeats-backend/internal/logger"
	"github.com/twobeats/twobeats-backend/internal/utils"
)

type Config struct {
	JWTSecretKey  string
	ChartCacheTTL time.Duration
	Port          string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	chartCacheTTLSeconds := utils.GetEnvAsInt("CHART_CACHE_TTL", 60, log)
	port := utils.GetEnv("PORT", "8080", log)
	return Config{
		JWTSecretKey:  jwtSecretKey,
		ChartCacheTTL: time.Duration(chartCacheTTLSeconds) * time.Second,
		Port:          port,
	}
}
