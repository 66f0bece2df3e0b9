package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"personalsite/internal/models"
	"personalsite/internal/services"
)

type MetaReader interface {
	Get(ctx context.Context) (*models.SiteMeta, error)
}

type MetaHandler struct {
	Service MetaReader
}

func NewMetaHandler(service MetaReader) *MetaHandler {
	return &MetaHandler{Service: service}
}

type metaResponse struct {
	Email    *string        `json:"email"`
	Location *string        `json:"location"`
	Socials  map[string]any `json:"socials"`
	Hero     string         `json:"hero"`
}

func (h *MetaHandler) Get(c *gin.Context) {
	meta, err := h.Service.Get(c.Request.Context())
	if err != nil {
		slog.Error("load site meta", "error", err)
		respondError(c, err)
		return
	}
	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": codeNotFound})
		return
	}
	c.JSON(http.StatusOK, metaResponse{
		Email:    meta.Email,
		Location: meta.Location,
		Socials:  services.ParseSocials(meta.Socials),
		Hero:     meta.Hero,
	})
}
