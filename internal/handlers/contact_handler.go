package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"personalsite/internal/models"
	"personalsite/internal/services"
)

const handleSuffix = ":handle"

type ContactHandler struct {
	Service services.ContactService
}

func NewContactHandler(service services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

// Submit answers 202 both for stored and for silently dropped submissions.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(err).respond(c)
		return
	}
	fields := fieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "must not be blank"
	}
	if strings.TrimSpace(req.Message) == "" {
		fields["message"] = "must not be blank"
	}
	if len(fields) > 0 {
		fields.respond(c)
		return
	}

	if err := h.Service.Submit(c.Request.Context(), req, clientIP(c)); err != nil {
		if _, ok := services.AsContactError(err); !ok {
			slog.Error("contact submission failed", "error", err)
		}
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *ContactHandler) List(c *gin.Context) {
	var handled *bool
	if raw := c.Query("handled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fieldErrors{"handled": "must be true or false"}.respond(c)
			return
		}
		handled = &v
	}

	msgs, err := h.Service.List(c.Request.Context(), handled)
	if err != nil {
		slog.Error("list contact messages", "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// Handle serves POST /api/contact/{id}:handle.
func (h *ContactHandler) Handle(c *gin.Context) {
	raw, ok := strings.CutSuffix(c.Param("idAction"), handleSuffix)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": codeNotFound})
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		fieldErrors{"id": "must be a UUID"}.respond(c)
		return
	}

	if err := h.Service.MarkHandled(c.Request.Context(), id); err != nil {
		slog.Error("mark contact message handled", "id", id, "error", err)
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
