package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gestionrodar/filmoteca/internal/cache"
	"github.com/gestionrodar/filmoteca/internal/config"
	"github.com/gestionrodar/filmoteca/internal/domain/film"
	"github.com/gestionrodar/filmoteca/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type FilmStore interface {
	Create(ctx context.Context, f film.Film) (film.Film, error)
	List(ctx context.Context) ([]film.Film, error)
	GetByID(ctx context.Context, id string) (film.Film, error)
	Update(ctx context.Context, id string, req film.UpdateFilmRequest) (film.Film, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (film.Stats, error)
}

const statsCacheKey = "films:stats"

type FilmsHandler struct {
	repo  FilmStore
	stats cache.Store
	cfg   config.Config
}

func NewFilmsHandler(repo FilmStore, stats cache.Store, cfg config.Config) *FilmsHandler {
	return &FilmsHandler{repo: repo, stats: stats, cfg: cfg}
}

// List returns the whole catalog as a raw array, newest first; the admin UI
// binds to this shape directly.
func (h *FilmsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	films, err := h.repo.List(cctx)

	if err != nil {
		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, films)
}

func (h *FilmsHandler) Get(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	f, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, film.ErrNotFound) {
			RespondMessage(ctx, http.StatusNotFound, "film record not found")
			return
		}

		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, f)
}

func (h *FilmsHandler) Create(ctx *gin.Context) {
	var req film.CreateFilmRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondMessage(ctx, http.StatusUnauthorized, "user not authenticated")
		return
	}

	f := film.NewFromCreateRequest(req, film.Creator{ID: u.ID, Username: u.Username})

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	created, err := h.repo.Create(cctx, f)

	if err != nil {
		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	h.stats.Delete(cctx, statsCacheKey)

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "film record created successfully",
		"data":    created,
	})
}

func (h *FilmsHandler) Update(ctx *gin.Context) {
	var req film.UpdateFilmRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	updated, err := h.repo.Update(cctx, ctx.Param("id"), req)

	if err != nil {
		if errors.Is(err, film.ErrNotFound) {
			RespondMessage(ctx, http.StatusNotFound, "film record not found")
			return
		}

		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	h.stats.Delete(cctx, statsCacheKey)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "film record updated successfully",
		"data":    updated,
	})
}

func (h *FilmsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.repo.Delete(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, film.ErrNotFound) {
			RespondMessage(ctx, http.StatusNotFound, "film record not found")
			return
		}

		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	h.stats.Delete(cctx, statsCacheKey)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "film record deleted successfully",
	})
}

// Stats serves the dashboard aggregate through a short TTL cache; writes
// invalidate it, so the numbers lag at most one TTL behind.
func (h *FilmsHandler) Stats(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if b, ok := h.stats.Get(cctx, statsCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	s, err := h.repo.Stats(cctx)

	if err != nil {
		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	body := gin.H{
		"success":      true,
		"estadisticas": s,
	}

	b, err := json.Marshal(body)

	if err != nil {
		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	h.stats.Set(cctx, statsCacheKey, b)

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
}
