package services

import (
	"context"
	"strings"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/domain/policy"
	"github.com/pkg/errors"
)

type resumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	GetByID(ctx context.Context, id string) (*models.Resume, error)
	ListByUser(ctx context.Context, userID string) ([]models.Resume, error)
	Delete(ctx context.Context, id string) error
}

type ResumeService struct {
	resumes resumeRepository
}

func NewResumeService(resumes resumeRepository) (*ResumeService, error) {
	if resumes == nil {
		return nil, errors.New("resume service requires a resume repository")
	}
	return &ResumeService{resumes: resumes}, nil
}

type ResumeInput struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	URL      string `json:"url" validate:"required,url"`
}

// AddResume records metadata of a file that was already uploaded elsewhere.
func (s *ResumeService) AddResume(ctx context.Context, actor models.Actor, input ResumeInput) (*models.Resume, error) {
	input.FileName = strings.TrimSpace(input.FileName)
	input.URL = strings.TrimSpace(input.URL)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	resume := models.NewResume(actor.ID, input.FileName, input.URL)
	if err := s.resumes.Create(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) ListResumes(ctx context.Context, actor models.Actor) ([]models.Resume, error) {
	return s.resumes.ListByUser(ctx, actor.ID)
}

func (s *ResumeService) DeleteResume(ctx context.Context, actor models.Actor, resumeID string) error {
	resume, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return err
	}

	if !policy.CanUseResume(resume, actor) {
		return errs.Forbidden("resume belongs to another user")
	}

	return s.resumes.Delete(ctx, resume.ID)
}
