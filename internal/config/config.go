package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	// optional backends; empty means in-memory
	DBURL     string
	RedisAddr string
	RedisDB   int

	// per-client request window
	RateLimit  int
	RateWindow time.Duration

	// process-wide overload guard
	GlobalRPS   float64
	GlobalBurst int

	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string

	OTLPEndpoint   string
	AllowedOrigins []string
}

func Load() Config {
	// .env is optional, real env always wins
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		DBURL:     os.Getenv("DATABASE_URL"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		RateLimit:  getEnvInt("RATE_LIMIT", 100),
		RateWindow: getEnvDuration("RATE_WINDOW", time.Minute),

		GlobalRPS:   float64(getEnvInt("GLOBAL_RPS", 500)),
		GlobalBurst: getEnvInt("GLOBAL_BURST", 1000),

		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 15*time.Minute),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@talenthub.local"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return d
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
