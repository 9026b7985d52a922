package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ping func() error
}

func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.ping != nil {
		if err := h.ping(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// APIHealth is the UI-facing health check, envelope included.
func (h *HealthHandler) APIHealth(ctx *gin.Context) {
	database := "connected"

	if h.ping != nil {
		if err := h.ping(); err != nil {
			database = "disconnected"
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "server running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}
