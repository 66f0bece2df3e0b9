package services

import (
	"context"
	"encoding/json"

	"personalsite/internal/models"
	"personalsite/internal/repositories"
)

type MetaService struct {
	repo repositories.SiteMetaRepository
}

func NewMetaService(repo repositories.SiteMetaRepository) *MetaService {
	return &MetaService{repo: repo}
}

// Get returns nil without error when no meta row exists.
func (s *MetaService) Get(ctx context.Context) (*models.SiteMeta, error) {
	return s.repo.Get(ctx)
}

// ParseSocials decodes the socials JSON object. Empty or malformed input
// yields an empty map.
func ParseSocials(raw string) map[string]any {
	out := map[string]any{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}
