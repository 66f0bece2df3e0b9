package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"personalsite/internal/config"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type SystemHandler struct {
	DB      Pinger
	Build   config.BuildConfig
	started time.Time
	now     func() time.Time
}

func NewSystemHandler(db Pinger, build config.BuildConfig) *SystemHandler {
	return &SystemHandler{DB: db, Build: build, started: time.Now(), now: time.Now}
}

func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     h.Build.Version,
		"gitCommit":   h.Build.GitCommit,
		"buildTime":   h.Build.BuildTime,
		"environment": h.Build.Environment,
		"uptime":      h.now().Sub(h.started).Truncate(time.Second).String(),
	})
}

func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
