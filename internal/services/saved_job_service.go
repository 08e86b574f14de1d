package services

import (
	"context"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/pkg/errors"
)

type savedJobRepository interface {
	Create(ctx context.Context, saved *models.SavedJob) error
	Delete(ctx context.Context, userID, jobID string) error
	ListByUser(ctx context.Context, userID string) ([]models.SavedJob, error)
}

// SavedJobService manages the actor's own bookmarks only.
type SavedJobService struct {
	jobs  jobLookup
	saved savedJobRepository
}

func NewSavedJobService(jobs jobLookup, saved savedJobRepository) (*SavedJobService, error) {
	if jobs == nil || saved == nil {
		return nil, errors.New("saved job service requires jobs and saved jobs")
	}
	return &SavedJobService{jobs: jobs, saved: saved}, nil
}

func (s *SavedJobService) SaveJob(ctx context.Context, actor models.Actor, jobID string) (*models.SavedJob, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	saved := models.NewSavedJob(actor.ID, job.ID)
	if err = s.saved.Create(ctx, saved); err != nil {
		if errs.Is(err, errs.KindConflict) {
			return nil, errs.Conflict("job already saved")
		}
		return nil, err
	}

	saved.Job = job
	return saved, nil
}

func (s *SavedJobService) UnsaveJob(ctx context.Context, actor models.Actor, jobID string) error {
	return s.saved.Delete(ctx, actor.ID, jobID)
}

func (s *SavedJobService) ListSavedJobs(ctx context.Context, actor models.Actor) ([]models.SavedJob, error) {
	return s.saved.ListByUser(ctx, actor.ID)
}
