package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"personalsite/internal/models"
)

// ResumeRepository reads the résumé tables. Writes belong to the admin CRUD
// surface, which lives elsewhere.
type ResumeRepository interface {
	ListProjects(ctx context.Context) ([]models.ResumeProject, error)
	ListCertificates(ctx context.Context) ([]models.ResumeCertificate, error)
	ListLanguages(ctx context.Context) ([]models.ResumeLanguage, error)
	ListEducation(ctx context.Context) ([]models.ResumeEducation, error)
	GetHobbies(ctx context.Context) (*models.ResumeHobbies, error)
}

type resumeRepository struct {
	DB *sql.DB
}

func NewResumeRepository(db *sql.DB) ResumeRepository {
	return &resumeRepository{DB: db}
}

func (r *resumeRepository) ListProjects(ctx context.Context) ([]models.ResumeProject, error) {
	const q = `
		SELECT id, company, project_name, start_at, end_at, description,
		       responsibilities, tech_stack, repo_url, demo_url
		FROM resume_project
		ORDER BY start_at DESC, id
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list resume projects: %w", err)
	}
	defer rows.Close()

	var out []models.ResumeProject
	for rows.Next() {
		var (
			p     models.ResumeProject
			endAt sql.NullTime
		)
		if err := rows.Scan(
			&p.ID, &p.Company, &p.ProjectName, &p.StartAt, &endAt, &p.Description,
			pq.Array(&p.Responsibilities), pq.Array(&p.TechStack), &p.RepoURL, &p.DemoURL,
		); err != nil {
			return nil, fmt.Errorf("scan resume project: %w", err)
		}
		if endAt.Valid {
			t := endAt.Time
			p.EndAt = &t
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resume projects: %w", err)
	}
	return out, nil
}

func (r *resumeRepository) ListCertificates(ctx context.Context) ([]models.ResumeCertificate, error) {
	const q = `
		SELECT id, name, issuer, start_at, end_at, description, certificate_id, url
		FROM resume_certificate
		ORDER BY start_at DESC NULLS LAST, id
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list resume certificates: %w", err)
	}
	defer rows.Close()

	var out []models.ResumeCertificate
	for rows.Next() {
		var (
			c              models.ResumeCertificate
			startAt, endAt sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Issuer, &startAt, &endAt, &c.Description, &c.CertificateID, &c.URL,
		); err != nil {
			return nil, fmt.Errorf("scan resume certificate: %w", err)
		}
		c.StartAt = nullTimePtr(startAt)
		c.EndAt = nullTimePtr(endAt)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resume certificates: %w", err)
	}
	return out, nil
}

func (r *resumeRepository) ListLanguages(ctx context.Context) ([]models.ResumeLanguage, error) {
	const q = `SELECT id, name, level FROM resume_language ORDER BY name, id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list resume languages: %w", err)
	}
	defer rows.Close()

	var out []models.ResumeLanguage
	for rows.Next() {
		var l models.ResumeLanguage
		if err := rows.Scan(&l.ID, &l.Name, &l.Level); err != nil {
			return nil, fmt.Errorf("scan resume language: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resume languages: %w", err)
	}
	return out, nil
}

func (r *resumeRepository) ListEducation(ctx context.Context) ([]models.ResumeEducation, error) {
	const q = `
		SELECT id, institution, field, degree, since, expected_until,
		       thesis_title, thesis_description, status
		FROM resume_education
		ORDER BY since DESC, id
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list resume education: %w", err)
	}
	defer rows.Close()

	var out []models.ResumeEducation
	for rows.Next() {
		var (
			e     models.ResumeEducation
			until sql.NullTime
		)
		if err := rows.Scan(
			&e.ID, &e.Institution, &e.Field, &e.Degree, &e.Since, &until,
			&e.ThesisTitle, &e.ThesisDescription, &e.Status,
		); err != nil {
			return nil, fmt.Errorf("scan resume education: %w", err)
		}
		e.ExpectedUntil = nullTimePtr(until)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resume education: %w", err)
	}
	return out, nil
}

// GetHobbies returns (nil, nil) when no row exists.
func (r *resumeRepository) GetHobbies(ctx context.Context) (*models.ResumeHobbies, error) {
	const q = `SELECT id, sports, others FROM resume_hobbies ORDER BY id LIMIT 1`
	var h models.ResumeHobbies
	err := r.DB.QueryRowContext(ctx, q).Scan(&h.ID, pq.Array(&h.Sports), pq.Array(&h.Others))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get resume hobbies: %w", err)
	}
	return &h, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
