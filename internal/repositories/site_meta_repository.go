package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"personalsite/internal/models"
)

type SiteMetaRepository interface {
	Get(ctx context.Context) (*models.SiteMeta, error)
}

type siteMetaRepository struct {
	DB *sql.DB
}

func NewSiteMetaRepository(db *sql.DB) SiteMetaRepository {
	return &siteMetaRepository{DB: db}
}

// Get returns (nil, nil) when the meta row has not been seeded.
func (r *siteMetaRepository) Get(ctx context.Context) (*models.SiteMeta, error) {
	const q = `SELECT email, location, socials, hero FROM site_meta WHERE id = 1`
	var m models.SiteMeta
	err := r.DB.QueryRowContext(ctx, q).Scan(&m.Email, &m.Location, &m.Socials, &m.Hero)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get site meta: %w", err)
	}
	return &m, nil
}
