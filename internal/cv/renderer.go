package cv

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"personalsite/internal/models"
	"personalsite/internal/services"
)

//go:embed templates/cv.html.tmpl
var templateFS embed.FS

var cvTemplate = template.Must(
	template.New("cv.html.tmpl").
		Funcs(template.FuncMap{
			"join":  strings.Join,
			"deref": deref,
		}).
		ParseFS(templateFS, "templates/cv.html.tmpl"),
)

type MetaSource interface {
	Get(ctx context.Context) (*models.SiteMeta, error)
}

type HobbySource interface {
	GetHobbies(ctx context.Context) (*models.ResumeHobbies, error)
}

// Renderer turns an assembled Model into HTML and PDF.
type Renderer struct {
	meta    MetaSource
	hobbies HobbySource
	pdf     *PDFConverter
}

func NewRenderer(meta MetaSource, hobbies HobbySource, pdf *PDFConverter) *Renderer {
	return &Renderer{meta: meta, hobbies: hobbies, pdf: pdf}
}

type header struct {
	FullName string
	Role     string
	Summary  string
	Email    string
	Location string
	Phone    string
}

type skillGroups struct {
	Languages  []string
	Frameworks []string
	Datastores []string
	Tools      []string
}

// RenderHTML executes the CV template. Missing site meta, hobbies or
// unparsable socials render as empty sections.
func (r *Renderer) RenderHTML(ctx context.Context, m *Model, t Labels) (string, error) {
	meta, err := r.meta.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load site meta: %w", err)
	}
	hobbies, err := r.hobbies.GetHobbies(ctx)
	if err != nil {
		return "", fmt.Errorf("load hobbies: %w", err)
	}

	socials := map[string]any{}
	var metaEmail, metaLocation *string
	if meta != nil {
		socials = services.ParseSocials(meta.Socials)
		metaEmail, metaLocation = meta.Email, meta.Location
	}

	data := map[string]any{
		"cv": m,
		"t":  t,
		"resume": header{
			FullName: m.FullName,
			Role:     m.Title,
			Summary:  m.Summary,
			Email:    firstOf(m.Email, metaEmail),
			Location: firstOf(m.Location, metaLocation),
			Phone:    deref(m.Phone),
		},
		"skills":  groupSkills(m),
		"hobbies": hobbies,
		"socials": socials,
	}

	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute cv template: %w", err)
	}
	return buf.String(), nil
}

// RenderPDF renders HTML and converts it. The PDF metadata dates are pinned
// to the model's LastUpdated so the output only changes with its content.
func (r *Renderer) RenderPDF(ctx context.Context, m *Model, t Labels) ([]byte, error) {
	doc, err := r.RenderHTML(ctx, m, t)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, m.LastUpdated)
	if err != nil {
		date = time.Unix(0, 0).UTC()
	}
	return r.pdf.HTMLToPDF(doc, DocInfo{
		Title:  "CV " + m.FullName,
		Author: m.FullName,
		Date:   date,
	})
}

func groupSkills(m *Model) skillGroups {
	g := skillGroups{
		Languages:  make([]string, 0, len(m.Languages)),
		Frameworks: []string{},
		Datastores: []string{},
		Tools:      []string{},
	}
	for _, l := range m.Languages {
		g.Languages = append(g.Languages, l.Name)
	}
	seen := map[string]bool{}
	for _, p := range m.Projects {
		for _, tech := range p.Technologies {
			if !seen[tech] {
				seen[tech] = true
				g.Tools = append(g.Tools, tech)
			}
		}
	}
	return g
}

func firstOf(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
