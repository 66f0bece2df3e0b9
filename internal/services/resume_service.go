package services

import (
	"context"
	"log/slog"

	"personalsite/internal/models"
	"personalsite/internal/repositories"
)

// ResumeService is the read side of the résumé tables used by the CV
// pipeline.
type ResumeService struct {
	repo repositories.ResumeRepository
	log  *slog.Logger
}

func NewResumeService(repo repositories.ResumeRepository) *ResumeService {
	return &ResumeService{repo: repo, log: slog.Default().With("component", "resume")}
}

func (s *ResumeService) ListProjects(ctx context.Context) ([]models.ResumeProject, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("listed resume projects", "count", len(projects))
	return projects, nil
}

func (s *ResumeService) ListCertificates(ctx context.Context) ([]models.ResumeCertificate, error) {
	certs, err := s.repo.ListCertificates(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("listed resume certificates", "count", len(certs))
	return certs, nil
}

func (s *ResumeService) ListLanguages(ctx context.Context) ([]models.ResumeLanguage, error) {
	return s.repo.ListLanguages(ctx)
}

func (s *ResumeService) ListEducation(ctx context.Context) ([]models.ResumeEducation, error) {
	return s.repo.ListEducation(ctx)
}

func (s *ResumeService) GetHobbies(ctx context.Context) (*models.ResumeHobbies, error) {
	return s.repo.GetHobbies(ctx)
}
