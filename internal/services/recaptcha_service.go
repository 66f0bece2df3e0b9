package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"personalsite/internal/config"
	"personalsite/internal/models"
)

// CaptchaVerifier checks a client token with the CAPTCHA provider. It never
// returns an error: transport problems come back as an unsuccessful result.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) *models.CaptchaResult
	IsScoreAcceptable(score *float64) bool
	IsActionValid(action string) bool
	IsHostnameValid(hostname string) bool
}

type RecaptchaService struct {
	cfg    config.RecaptchaConfig
	client *http.Client
	log    *slog.Logger
}

func NewRecaptchaService(cfg config.RecaptchaConfig, client *http.Client) *RecaptchaService {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &RecaptchaService{
		cfg:    cfg,
		client: client,
		log:    slog.Default().With("component", "recaptcha"),
	}
}

var _ CaptchaVerifier = (*RecaptchaService)(nil)

func (s *RecaptchaService) Verify(ctx context.Context, token, remoteIP string) *models.CaptchaResult {
	if !s.cfg.IsEnabled() {
		s.log.Warn("reCAPTCHA verification is disabled")
		one := 1.0
		return &models.CaptchaResult{Success: true, Score: &one, Action: s.cfg.ExpectedAction}
	}
	if strings.TrimSpace(s.cfg.Secret) == "" {
		s.log.Error("reCAPTCHA secret key is not configured")
		return &models.CaptchaResult{ErrorCodes: []string{"missing-secret-key"}}
	}

	form := url.Values{
		"secret":   {s.cfg.Secret},
		"response": {token},
	}
	if remoteIP != "" && remoteIP != "unknown" {
		form.Set("remoteip", remoteIP)
	}

	res, err := s.post(ctx, form)
	if err != nil {
		s.log.Error("failed to verify reCAPTCHA token", "error", err)
		return &models.CaptchaResult{ErrorCodes: []string{"verification-failed: " + err.Error()}}
	}

	if !res.Success {
		s.log.Warn("reCAPTCHA verification failed",
			"score", res.Score, "action", res.Action, "error_codes", res.ErrorCodes)
	} else {
		s.log.Info("reCAPTCHA verification result",
			"score", res.Score, "action", res.Action, "hostname", res.Hostname)
	}
	return res
}

func (s *RecaptchaService) post(ctx context.Context, form url.Values) (*models.CaptchaResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("siteverify request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result models.CaptchaResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &result, nil
}

func (s *RecaptchaService) IsScoreAcceptable(score *float64) bool {
	return score != nil && *score >= s.cfg.MinimumScore
}

// IsActionValid accepts any action when none is configured.
func (s *RecaptchaService) IsActionValid(action string) bool {
	if s.cfg.ExpectedAction == "" {
		return true
	}
	return action == s.cfg.ExpectedAction
}

// IsHostnameValid accepts any hostname when none is configured.
func (s *RecaptchaService) IsHostnameValid(hostname string) bool {
	if s.cfg.ExpectedHostname == "" {
		return true
	}
	return hostname == s.cfg.ExpectedHostname
}
