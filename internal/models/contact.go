package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is an inquiry submitted through the public contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Handled   bool      `json:"handled"`
}

// ContactSubmission is the public form payload. Website is the honeypot field.
type ContactSubmission struct {
	Name           string `json:"name" binding:"required,max=200"`
	Email          string `json:"email" binding:"required,email,max=320"`
	Message        string `json:"message" binding:"required,max=4000"`
	Website        string `json:"website"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// CaptchaResult is the siteverify response. Score is nil when the provider
// did not return one.
type CaptchaResult struct {
	Success     bool     `json:"success"`
	Score       *float64 `json:"score,omitempty"`
	Action      string   `json:"action,omitempty"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}
