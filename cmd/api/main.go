package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestionrodar/filmoteca/internal/auth"
	"github.com/gestionrodar/filmoteca/internal/cache"
	"github.com/gestionrodar/filmoteca/internal/config"
	"github.com/gestionrodar/filmoteca/internal/db"
	httpx "github.com/gestionrodar/filmoteca/internal/http"
	"github.com/gestionrodar/filmoteca/internal/observability"
	"github.com/gestionrodar/filmoteca/internal/repo/postgres"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		// no logger yet; the config error is the whole story
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	// tracing is optional; without an endpoint spans simply go nowhere useful
	var traceShutdown func(context.Context) error

	if cfg.OTELEndpoint != "" {
		traceShutdown, err = observability.InitTracer(context.Background(), "filmoteca", cfg.OTELEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
	}

	// database: migrate, pool, seed
	migrateCtx, cancelMigrate := config.WithTimeout(30 * time.Second)

	err = db.RunMigrations(migrateCtx, cfg.DBURL)

	cancelMigrate()

	if err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)

	created, err := db.EnsureAdminUser(seedCtx, pool, cfg)

	cancelSeed()

	if err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	if created {
		log.Info("bootstrap admin created", "username", cfg.AdminUsername)
	}

	prom := observability.NewProm()

	// stats cache: redis when configured, in-process otherwise
	var statsCache cache.Store

	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}, cfg.StatsCacheTTL)

		pingCtx, cancelPing := config.WithTimeout(2 * time.Second)

		err = redisCache.Ping(pingCtx)

		cancelPing()

		if err != nil {
			log.Error("redis unreachable", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}

		defer redisCache.Close()

		statsCache = redisCache
	} else {
		statsCache = cache.NewMemory(cfg.StatsCacheTTL)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	stores := httpx.Stores{
		Users:      postgres.NewUsersRepo(pool, prom),
		Films:      postgres.NewFilmsRepo(pool, prom),
		StatsCache: statsCache,
		Ping: func() error {
			return prom.ObserveDB("ping", httpx.PingPool(pool.Ping))
		},
	}

	router := httpx.NewRouter(log, cfg, jwtManager, stores, prom)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}

		if traceShutdown != nil {
			_ = traceShutdown(ctx)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
