package config

import (
	"os"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	PostgresDSN   string
	JWTPrivateKey string
	TokenTTL      time.Duration
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "3000"),
		MongoURI:      getenv("MONGO_URI", ""),
		MongoDB:       getenv("MONGO_DB", "gamedex"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		JWTPrivateKey: getenv("JWT_PRIVATE_KEY", ""),
		TokenTTL:      getduration("TOKEN_TTL", 0),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getduration parses a Go duration string ("24h"). Zero means issued tokens
// never expire.
func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
