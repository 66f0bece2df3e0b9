// Package cv assembles résumé records into a printable document and renders
// it to PDF.
package cv

import "strings"

type Link struct {
	Label string
	URL   string
}

type Language struct {
	Name  string
	Level string
}

type Experience struct {
	Company      string
	Role         string
	Location     *string
	From         string
	To           string // "present" for ongoing roles
	Bullets      []string
	Technologies []string
	Storage      []string
}

type Project struct {
	Name         string
	Company      string
	Description  string
	Bullets      []string
	Technologies []string
	RepoURL      *string
	DemoURL      *string
	From         string
	To           *string
}

type Education struct {
	School string
	Degree *string
	From   string
	To     *string
}

type Certification struct {
	Name        string
	Issuer      *string
	From        *string
	To          *string
	URL         *string
	ID          *string
	Description string
}

// Model is the fully formatted document. Every string in it is plain text.
type Model struct {
	Slug           string
	Lang           string
	FullName       string
	Title          string
	Summary        string
	PhotoURL       *string
	Location       *string
	Phone          *string
	Email          *string
	Links          []Link
	Skills         []string
	Projects       []Project
	Experiences    []Experience
	Education      []Education
	Certifications []Certification
	Languages      []Language
	LastUpdated    string // 2006-01-02, UTC
}

// Labels maps section keys to localized headings.
type Labels map[string]string

var englishLabels = Labels{
	"summary":         "SUMMARY",
	"projects":        "PROJECTS",
	"work_experience": "WORK EXPERIENCE",
	"skills":          "SKILLS",
	"certifications":  "CERTIFICATIONS",
	"languages":       "LANGUAGES",
	"education":       "EDUCATION",
	"last_updated":    "Last updated",
	"present":         "present",
	"hobbies":         "HOBBIES",
	"contact":         "CONTACT",
}

var czechLabels = Labels{
	"summary":         "SHRNUTÍ",
	"projects":        "PROJEKTY",
	"work_experience": "PRACOVNÍ ZKUŠENOSTI",
	"skills":          "DOVEDNOSTI",
	"certifications":  "CERTIFIKACE",
	"languages":       "JAZYKY",
	"education":       "VZDĚLÁNÍ",
	"last_updated":    "Naposledy aktualizováno",
	"present":         "současnost",
	"hobbies":         "ZÁLIBY",
	"contact":         "KONTAKT",
}

// LabelsFor returns the Czech set for "cs"/"cz" and English otherwise. The
// returned map is a copy.
func LabelsFor(lang string) Labels {
	src := englishLabels
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "cs", "cz":
		src = czechLabels
	}
	out := make(Labels, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
