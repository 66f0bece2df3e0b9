package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"personalsite/internal/cv"
)

var cvFilePattern = regexp.MustCompile(`^([a-z0-9-]+)\.([a-z]{2})\.pdf$`)

type CVGenerator interface {
	Generate(ctx context.Context, slug, lang string) (*cv.Document, error)
}

type CVHandler struct {
	Generator CVGenerator
	MaxAge    int
}

func NewCVHandler(generator CVGenerator, maxAge int) *CVHandler {
	return &CVHandler{Generator: generator, MaxAge: maxAge}
}

// Get serves GET /cv/{slug}.{lang}.pdf.
func (h *CVHandler) Get(c *gin.Context) {
	m := cvFilePattern.FindStringSubmatch(c.Param("file"))
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": codeNotFound})
		return
	}
	slug, lang := m[1], m[2]

	doc, err := h.Generator.Generate(c.Request.Context(), slug, lang)
	if err != nil {
		slog.Error("cv render failed", "slug", slug, "lang", lang, "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "CV_RENDER_FAILED"})
		return
	}

	c.Header("ETag", doc.ETag)
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", h.MaxAge))
	if etagMatches(c.GetHeader("If-None-Match"), doc.ETag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Content-Disposition", cv.ContentDisposition(doc.FullName, doc.Lang))
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}

// etagMatches implements the weak comparison used by If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
