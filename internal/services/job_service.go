package services

import (
	"context"
	"strings"
	"time"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/domain/policy"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter models.JobFilter) ([]models.Job, int64, error)
	ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
}

type JobService struct {
	jobs jobRepository
}

func NewJobService(jobs jobRepository) (*JobService, error) {
	if jobs == nil {
		return nil, errors.New("job service requires a job repository")
	}
	return &JobService{jobs: jobs}, nil
}

type JobInput struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Description  string     `json:"description" validate:"required,max=10000"`
	Requirements string     `json:"requirements" validate:"max=10000"`
	CompanyName  string     `json:"companyName" validate:"required,max=200"`
	Location     string     `json:"location" validate:"required,max=200"`
	SalaryMin    int        `json:"salaryMin" validate:"min=0"`
	SalaryMax    int        `json:"salaryMax" validate:"min=0"`
	Type         string     `json:"type" validate:"required"`
	Category     string     `json:"category" validate:"max=100"`
	Tags         []string   `json:"tags" validate:"max=20,dive,max=50"`
	Status       string     `json:"status"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

// JobPatch carries only the fields a caller wants to change.
type JobPatch struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Requirements *string    `json:"requirements"`
	CompanyName  *string    `json:"companyName"`
	Location     *string    `json:"location"`
	SalaryMin    *int       `json:"salaryMin"`
	SalaryMax    *int       `json:"salaryMax"`
	Type         *string    `json:"type"`
	Category     *string    `json:"category"`
	Tags         []string   `json:"tags"`
	Status       *string    `json:"status"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

type JobPage struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (s *JobService) CreateJob(ctx context.Context, actor models.Actor, input JobInput) (*models.Job, error) {
	if !policy.CanCreateJob(actor) {
		return nil, errs.Forbidden("only employers and admins can post jobs")
	}

	job := models.NewJob(actor.ID)
	if err := applyJobInput(job, input); err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to create job: %v", err)
		return nil, err
	}

	log.Infof("job %s posted by %s", job.ID, actor.ID)
	return job, nil
}

func (s *JobService) UpdateJob(ctx context.Context, jobID string, patch JobPatch, actor models.Actor) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutateJob(job, actor) {
		return nil, errs.Forbidden("only the job owner or an admin can update this job")
	}

	if err = applyJobInput(job, patch.overlay(inputFromJob(job))); err != nil {
		return nil, err
	}

	if err = s.jobs.Update(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to update job %s: %v", job.ID, err)
		return nil, err
	}
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, jobID string, actor models.Actor) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if !policy.CanMutateJob(job, actor) {
		return errs.Forbidden("only the job owner or an admin can delete this job")
	}

	if err = s.jobs.Delete(ctx, job.ID); err != nil {
		return err
	}

	log.Infof("job %s deleted by %s", job.ID, actor.ID)
	return nil
}

func (s *JobService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	return s.jobs.GetByID(ctx, jobID)
}

func (s *JobService) SearchJobs(ctx context.Context, filter models.JobFilter) (*JobPage, error) {
	filter = filter.Normalize()

	jobs, total, err := s.jobs.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &JobPage{Jobs: jobs, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *JobService) ListEmployerJobs(ctx context.Context, employerID string) ([]models.Job, error) {
	return s.jobs.ListByEmployer(ctx, employerID)
}

func inputFromJob(job *models.Job) JobInput {
	return JobInput{
		Title:        job.Title,
		Description:  job.Description,
		Requirements: job.Requirements,
		CompanyName:  job.CompanyName,
		Location:     job.Location,
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		Type:         string(job.Type),
		Category:     job.Category,
		Tags:         job.Tags,
		Status:       string(job.Status),
		ExpiresAt:    job.ExpiresAt,
	}
}

func (p JobPatch) overlay(input JobInput) JobInput {
	if p.Title != nil {
		input.Title = *p.Title
	}
	if p.Description != nil {
		input.Description = *p.Description
	}
	if p.Requirements != nil {
		input.Requirements = *p.Requirements
	}
	if p.CompanyName != nil {
		input.CompanyName = *p.CompanyName
	}
	if p.Location != nil {
		input.Location = *p.Location
	}
	if p.SalaryMin != nil {
		input.SalaryMin = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		input.SalaryMax = *p.SalaryMax
	}
	if p.Type != nil {
		input.Type = *p.Type
	}
	if p.Category != nil {
		input.Category = *p.Category
	}
	if p.Tags != nil {
		input.Tags = p.Tags
	}
	if p.Status != nil {
		input.Status = *p.Status
	}
	if p.ExpiresAt != nil {
		input.ExpiresAt = p.ExpiresAt
	}
	return input
}

// applyJobInput validates input as a whole and copies it onto job. Nothing is
// copied when any field is invalid.
func applyJobInput(job *models.Job, input JobInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Location = strings.TrimSpace(input.Location)

	err := validateInput(input)
	extra := map[string]string{}

	jobType, typeErr := models.ToJobType(input.Type)
	if input.Type != "" && typeErr != nil {
		extra["type"] = "must be one of full-time, part-time, contract, internship, freelance"
	}

	status := job.Status
	if input.Status != "" {
		parsed, statusErr := models.ToJobStatus(input.Status)
		if statusErr != nil {
			extra["status"] = "must be one of ACTIVE, CLOSED, DRAFT"
		}
		status = parsed
	}
	if status == "" {
		status = models.JobActive
	}

	if input.SalaryMax > 0 && input.SalaryMin > input.SalaryMax {
		extra["salaryMin"] = "must not exceed salaryMax"
	}

	if err = mergeFieldErrors(err, extra); err != nil {
		return err
	}

	job.Title = input.Title
	job.Description = input.Description
	job.Requirements = strings.TrimSpace(input.Requirements)
	job.CompanyName = input.CompanyName
	job.Location = input.Location
	job.SalaryMin = input.SalaryMin
	job.SalaryMax = input.SalaryMax
	job.Type = jobType
	job.Category = strings.TrimSpace(input.Category)
	job.Tags = models.NormalizeTags(input.Tags)
	job.Status = status
	if input.ExpiresAt != nil {
		expiresAt := input.ExpiresAt.UTC()
		job.ExpiresAt = &expiresAt
	}
	return nil
}
