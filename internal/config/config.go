package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	// JWT_SECRET has no fallback. The original deployment shipped with a
	// hard-coded default secret; startup now fails instead.
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	// bootstrap admin, seeded once if the username is free
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	RedisAddr     string
	RedisPassword string

	OTELEndpoint  string
	StatsCacheTTL time.Duration
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func Load() (Config, error) {
	// best effort .env load; real env always wins
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnvInt("PORT", 3001),
		DBURL:         buildDBURL(),
		JWTSecret:     secret,
		TokenTTL:      24 * time.Hour,
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		AdminUsername: getEnv("ADMIN_USERNAME", "Rodar2025"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@filmografias.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "#Rodar2025@Rodar"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		OTELEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		StatsCacheTTL: time.Duration(getEnvInt("STATS_CACHE_TTL_SECONDS", 30)) * time.Second,
	}

	return cfg, nil
}

func buildDBURL() string {
	// a full DSN wins over the DB_* parts
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "filmoteca")
	pass := getEnv("DB_PASSWORD", "filmoteca")
	name := getEnv("DB_NAME", "filmoteca")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
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
			return fallback
		}

		return num
	}
	return fallback
}
