package handlers

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"personalsite/internal/services"
)

const (
	codeValidationFailed = "VALIDATION_FAILED"
	codeInternal         = "INTERNAL"
	codeNotFound         = "NOT_FOUND"
)

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	if addr := c.Request.RemoteAddr; addr != "" {
		if host, _, err := net.SplitHostPort(addr); err == nil {
			return host
		}
		return addr
	}
	return "unknown"
}

type fieldErrors map[string]string

func (f fieldErrors) respond(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": codeValidationFailed, "fields": f})
}

// bindingErrors turns a ShouldBindJSON error into per-field messages keyed by
// the JSON field name.
func bindingErrors(err error) fieldErrors {
	out := fieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "malformed JSON"
		return out
	}
	for _, fe := range verrs {
		out[lowerFirst(fe.Field())] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// respondError maps service errors: ContactError keeps its code and status,
// everything else is a 500 without details.
func respondError(c *gin.Context, err error) {
	if ce, ok := services.AsContactError(err); ok {
		c.JSON(ce.Status, gin.H{"error": string(ce.Code), "message": ce.Message})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": codeInternal})
}
