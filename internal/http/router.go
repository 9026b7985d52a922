package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gestionrodar/filmoteca/internal/auth"
	"github.com/gestionrodar/filmoteca/internal/cache"
	"github.com/gestionrodar/filmoteca/internal/config"
	"github.com/gestionrodar/filmoteca/internal/http/handlers"
	"github.com/gestionrodar/filmoteca/internal/http/middlewares"
	"github.com/gestionrodar/filmoteca/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 10 << 20 // matches the deployed server's 10mb body limit

// UsersStore is the full credential store surface: what the session handlers
// need plus the lookup the auth middleware resolves identities through.
type UsersStore interface {
	handlers.UserStore
	middlewares.UserResolver
}

// Stores groups the storage backends the router wires up. Both the postgres
// and the in-memory implementations satisfy these.
type Stores struct {
	Users      UsersStore
	Films      handlers.FilmStore
	StatsCache cache.Store
	Ping       func() error
}

func NewRouter(log *slog.Logger, cfg config.Config, jwtManager *auth.Manager, stores Stores, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("filmoteca"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(prom.Registry, promhttp.HandlerOpts{})))
	}

	// health probes
	h := handlers.NewHealthHandler(stores.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up handlers
	authMw := middlewares.NewAuthMiddleware(jwtManager, stores.Users)
	authHandler := handlers.NewAuthHandler(stores.Users, jwtManager, cfg)
	filmsHandler := handlers.NewFilmsHandler(stores.Films, stores.StatsCache, cfg)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/verify", authMw.RequireAuth(), authHandler.Verify)
		authGroup.POST("/register", authMw.RequireAuth(), middlewares.RequireAdmin(), authHandler.Register)
		authGroup.GET("/users", authMw.RequireAuth(), middlewares.RequireAdmin(), authHandler.ListUsers)
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.APIHealth)

		authed := api.Group("", authMw.RequireAuth())
		{
			authed.GET("/obtenerFilmografias", filmsHandler.List)
			authed.GET("/obtenerFilmografia/:id", filmsHandler.Get)
			authed.GET("/estadisticas", filmsHandler.Stats)

			editors := authed.Group("", middlewares.RequireEditor())
			{
				editors.POST("/nuevaFilmografia", filmsHandler.Create)
				editors.PUT("/actualizarFilmografia/:id", filmsHandler.Update)
				editors.DELETE("/eliminarFilmografia/:id", filmsHandler.Delete)
			}
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
		})
	})

	return r
}

// PingPool adapts a pool ping into the router's health probe shape.
func PingPool(ping func(ctx context.Context) error) func() error {
	return func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		return ping(ctx)
	}
}
