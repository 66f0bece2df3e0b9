package models

import (
	"time"

	"github.com/google/uuid"
)

type ResumeProject struct {
	ID               uuid.UUID  `json:"id"`
	Company          string     `json:"company"`
	ProjectName      string     `json:"project_name"`
	StartAt          time.Time  `json:"start_at"`
	EndAt            *time.Time `json:"end_at,omitempty"` // nil = ongoing
	Description      *string    `json:"description,omitempty"`
	Responsibilities []string   `json:"responsibilities"`
	TechStack        []string   `json:"tech_stack"`
	RepoURL          *string    `json:"repo_url,omitempty"`
	DemoURL          *string    `json:"demo_url,omitempty"`
}

type ResumeEducation struct {
	ID                uuid.UUID  `json:"id"`
	Institution       string     `json:"institution"`
	Field             *string    `json:"field,omitempty"`
	Degree            *string    `json:"degree,omitempty"`
	Since             time.Time  `json:"since"`
	ExpectedUntil     *time.Time `json:"expected_until,omitempty"`
	ThesisTitle       *string    `json:"thesis_title,omitempty"`
	ThesisDescription *string    `json:"thesis_description,omitempty"`
	Status            string     `json:"status"`
}

type ResumeCertificate struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Issuer        *string    `json:"issuer,omitempty"`
	StartAt       *time.Time `json:"start_at,omitempty"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	Description   *string    `json:"description,omitempty"`
	CertificateID *string    `json:"certificate_id,omitempty"`
	URL           *string    `json:"url,omitempty"`
}

type ResumeLanguage struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Level string    `json:"level"` // B2, C1, Native, ...
}

type ResumeHobbies struct {
	ID     uuid.UUID `json:"id"`
	Sports []string  `json:"sports"`
	Others []string  `json:"others"`
}
