package cv

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"personalsite/internal/config"
	"personalsite/internal/models"
)

const (
	monthLayout = "2006-01"
	yearLayout  = "2006"
	dateLayout  = "2006-01-02"
	presentMark = "present"
)

// ResumeSource is the read side of the résumé tables.
type ResumeSource interface {
	ListProjects(ctx context.Context) ([]models.ResumeProject, error)
	ListCertificates(ctx context.Context) ([]models.ResumeCertificate, error)
	ListLanguages(ctx context.Context) ([]models.ResumeLanguage, error)
	ListEducation(ctx context.Context) ([]models.ResumeEducation, error)
	GetHobbies(ctx context.Context) (*models.ResumeHobbies, error)
}

type Assembler struct {
	resume  ResumeSource
	profile config.ProfileConfig
	now     func() time.Time
}

func NewAssembler(resume ResumeSource, profile config.ProfileConfig) *Assembler {
	return &Assembler{resume: resume, profile: profile, now: time.Now}
}

// Assemble loads the four résumé sources concurrently and formats them into a
// Model. Any source error aborts the whole assembly.
func (a *Assembler) Assemble(ctx context.Context, slug, lang string) (*Model, error) {
	var (
		projects  []models.ResumeProject
		certs     []models.ResumeCertificate
		languages []models.ResumeLanguage
		education []models.ResumeEducation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if projects, err = a.resume.ListProjects(gctx); err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if certs, err = a.resume.ListCertificates(gctx); err != nil {
			return fmt.Errorf("list certificates: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if languages, err = a.resume.ListLanguages(gctx); err != nil {
			return fmt.Errorf("list languages: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if education, err = a.resume.ListEducation(gctx); err != nil {
			return fmt.Errorf("list education: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sorted := sortProjects(projects)

	p := a.profile
	links := make([]Link, 0, len(p.Links))
	for _, l := range p.Links {
		links = append(links, Link{Label: l.Label, URL: l.URL})
	}

	return &Model{
		Slug:           slug,
		Lang:           lang,
		FullName:       p.FullName,
		Title:          p.Title,
		Summary:        Sanitize(strings.TrimSpace(p.Summary)),
		PhotoURL:       optional(p.PhotoURL),
		Location:       optional(p.Location),
		Phone:          optional(p.Phone),
		Email:          optional(p.Email),
		Links:          links,
		Skills:         append([]string{}, p.Skills...),
		Projects:       buildProjects(sorted),
		Experiences:    buildExperiences(sorted),
		Education:      buildEducation(education),
		Certifications: buildCertifications(certs),
		Languages:      buildLanguages(languages),
		LastUpdated:    a.now().UTC().Format(dateLayout),
	}, nil
}

// sortProjects orders by end date descending with ongoing entries first, then
// by start date descending. The input slice is not modified.
func sortProjects(in []models.ResumeProject) []models.ResumeProject {
	out := append([]models.ResumeProject(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.EndAt == nil && b.EndAt != nil:
			return true
		case a.EndAt != nil && b.EndAt == nil:
			return false
		case a.EndAt != nil && b.EndAt != nil && !a.EndAt.Equal(*b.EndAt):
			return a.EndAt.After(*b.EndAt)
		}
		return a.StartAt.After(b.StartAt)
	})
	return out
}

func buildExperiences(projects []models.ResumeProject) []Experience {
	out := make([]Experience, 0, len(projects))
	for _, p := range projects {
		to := presentMark
		if p.EndAt != nil {
			to = p.EndAt.UTC().Format(monthLayout)
		}
		out = append(out, Experience{
			Company:      p.Company,
			Role:         p.ProjectName,
			From:         p.StartAt.UTC().Format(monthLayout),
			To:           to,
			Bullets:      SanitizeLines(p.Responsibilities),
			Technologies: nonNil(p.TechStack),
			Storage:      []string{},
		})
	}
	return out
}

func buildProjects(projects []models.ResumeProject) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, Project{
			Name:         p.ProjectName,
			Company:      p.Company,
			Description:  sanitizeOptional(p.Description),
			Bullets:      SanitizeLines(p.Responsibilities),
			Technologies: nonNil(p.TechStack),
			RepoURL:      p.RepoURL,
			DemoURL:      p.DemoURL,
			From:         p.StartAt.UTC().Format(monthLayout),
			To:           formatOptional(p.EndAt, monthLayout),
		})
	}
	return out
}

func buildEducation(in []models.ResumeEducation) []Education {
	sorted := append([]models.ResumeEducation(nil), in...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Since.After(sorted[j].Since)
	})

	out := make([]Education, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, Education{
			School: e.Institution,
			Degree: degreeLabel(e.Degree, e.Field),
			From:   e.Since.UTC().Format(yearLayout),
			To:     formatOptional(e.ExpectedUntil, yearLayout),
		})
	}
	return out
}

func degreeLabel(parts ...*string) *string {
	var kept []string
	for _, p := range parts {
		if p != nil && strings.TrimSpace(*p) != "" {
			kept = append(kept, *p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	label := strings.Join(kept, ", ")
	return &label
}

// certificateKey is end, else start, else nil which sorts last.
func certificateKey(c models.ResumeCertificate) *time.Time {
	if c.EndAt != nil {
		return c.EndAt
	}
	return c.StartAt
}

func buildCertifications(in []models.ResumeCertificate) []Certification {
	sorted := append([]models.ResumeCertificate(nil), in...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := certificateKey(sorted[i]), certificateKey(sorted[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})

	out := make([]Certification, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, Certification{
			Name:        c.Name,
			Issuer:      c.Issuer,
			From:        formatOptional(c.StartAt, yearLayout),
			To:          formatOptional(c.EndAt, yearLayout),
			URL:         c.URL,
			ID:          c.CertificateID,
			Description: sanitizeOptional(c.Description),
		})
	}
	return out
}

func buildLanguages(in []models.ResumeLanguage) []Language {
	out := make([]Language, 0, len(in))
	for _, l := range in {
		out = append(out, Language{Name: l.Name, Level: l.Level})
	}
	return out
}

func formatOptional(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(layout)
	return &s
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
