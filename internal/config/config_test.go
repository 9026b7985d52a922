package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	if !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("Load = %v, want ErrMissingJWTSecret", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "dev" || cfg.Port != 3001 {
		t.Fatalf("defaults wrong: env=%q port=%d", cfg.Env, cfg.Port)
	}

	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("token ttl = %v", cfg.TokenTTL)
	}

	if cfg.AdminUsername != "Rodar2025" {
		t.Fatalf("admin username = %q", cfg.AdminUsername)
	}

	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}

	if cfg.IsProd() {
		t.Fatal("dev config must not report prod")
	}
}

func TestLoadDatabaseURLWinsOverParts(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("DATABASE_URL", "postgres://u:p@db.example.com:5432/app")
	t.Setenv("DB_HOST", "ignored-host")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBURL != "postgres://u:p@db.example.com:5432/app" {
		t.Fatalf("dsn = %q", cfg.DBURL)
	}
}

func TestLoadBuildsDSNFromParts(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "films")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := "postgres://svc:pw@pg.internal:5433/films?sslmode=require"

	if cfg.DBURL != want {
		t.Fatalf("dsn = %q, want %q", cfg.DBURL, want)
	}
}
