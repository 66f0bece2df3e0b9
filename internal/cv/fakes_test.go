package cv

import (
	"context"
	"time"

	"personalsite/internal/config"
	"personalsite/internal/models"
)

type fakeResume struct {
	projects  []models.ResumeProject
	certs     []models.ResumeCertificate
	languages []models.ResumeLanguage
	education []models.ResumeEducation
	hobbies   *models.ResumeHobbies
	err       error
}

func (f *fakeResume) ListProjects(context.Context) ([]models.ResumeProject, error) {
	return f.projects, f.err
}

func (f *fakeResume) ListCertificates(context.Context) ([]models.ResumeCertificate, error) {
	return f.certs, nil
}

func (f *fakeResume) ListLanguages(context.Context) ([]models.ResumeLanguage, error) {
	return f.languages, nil
}

func (f *fakeResume) ListEducation(context.Context) ([]models.ResumeEducation, error) {
	return f.education, nil
}

func (f *fakeResume) GetHobbies(context.Context) (*models.ResumeHobbies, error) {
	return f.hobbies, nil
}

type fakeMeta struct {
	meta *models.SiteMeta
	err  error
}

func (f *fakeMeta) Get(context.Context) (*models.SiteMeta, error) {
	return f.meta, f.err
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptr(s string) *string { return &s }

var testProfile = config.ProfileConfig{
	FullName: "Ing. Jana Nováková",
	Title:    "Backend Engineer",
	Summary:  "  I build <b>reliable</b> services.  ",
	Location: "Praha",
	Phone:    "+420 123 456 789",
	Links: []config.LinkConfig{
		{Label: "GitHub", URL: "https://github.com/jana"},
	},
	Skills: []string{"Go", "PostgreSQL"},
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("X", -2*60*60))
}

func newTestAssembler(src ResumeSource) *Assembler {
	a := NewAssembler(src, testProfile)
	a.now = fixedClock
	return a
}
