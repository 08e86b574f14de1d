package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/events"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/domain/policy"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type jobLookup interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type resumeLookup interface {
	GetByID(ctx context.Context, id string) (*models.Resume, error)
}

type applicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error)
	DeleteIfStatus(ctx context.Context, id string, statuses []models.ApplicationStatus) (bool, error)
	UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus, notes *string) (bool, error)
}

type ApplicationService struct {
	bus          EventBus.Bus
	jobs         jobLookup
	users        userLookup
	resumes      resumeLookup
	applications applicationRepository
}

func NewApplicationService(bus EventBus.Bus, jobs jobLookup, users userLookup, resumes resumeLookup,
	applications applicationRepository) (*ApplicationService, error) {

	if bus == nil || jobs == nil || users == nil || resumes == nil || applications == nil {
		return nil, errors.New("application service requires bus, jobs, users, resumes and applications")
	}
	return &ApplicationService{
		bus:          bus,
		jobs:         jobs,
		users:        users,
		resumes:      resumes,
		applications: applications,
	}, nil
}

type ApplyInput struct {
	Notes    string  `json:"notes" validate:"max=5000"`
	ResumeID *string `json:"resumeId"`
}

// Apply checks, in order, that the job exists, that it is ACTIVE and that the
// user may apply. A second application for the same pair is rejected by the
// store and reported as a conflict.
func (s *ApplicationService) Apply(ctx context.Context, jobID, userID string, input ApplyInput) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if !job.AcceptsApplications() {
		return errs.InvalidState("job not active")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !policy.CanApply(user) {
		return errs.Forbidden("employers and admins cannot apply to jobs")
	}

	if err = validateInput(input); err != nil {
		return err
	}

	var resumeID *string
	if input.ResumeID != nil && strings.TrimSpace(*input.ResumeID) != "" {
		resume, err := s.resumes.GetByID(ctx, *input.ResumeID)
		if err != nil {
			return err
		}
		if !policy.CanUseResume(resume, models.Actor{ID: user.ID, Role: user.Role}) {
			return errs.Forbidden("resume belongs to another user")
		}
		resumeID = &resume.ID
	}

	application := models.NewApplication(job.ID, user.ID, input.Notes, resumeID)
	if err = s.applications.Create(ctx, application); err != nil {
		if errs.Is(err, errs.KindConflict) {
			return errs.Conflict("already applied")
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to store application: %v", err)
		return err
	}

	log.Infof("user %s applied to job %s", user.ID, job.ID)
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		JobID:       job.ID,
		JobTitle:    job.Title,
		EmployerID:  job.EmployerRef().Key(),
		ApplicantID: user.ID,
	})
	return nil
}

// Withdraw deletes the applicant's application while it is still PENDING or
// UNDER_REVIEW.
func (s *ApplicationService) Withdraw(ctx context.Context, jobID, userID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	application, err := s.applications.GetByJobAndApplicant(ctx, job.ID, userID)
	if err != nil {
		return err
	}

	if !policy.CanWithdraw(application) {
		return errs.InvalidState(fmt.Sprintf("application in status %s can no longer be withdrawn", application.Status))
	}

	deleted, err := s.applications.DeleteIfStatus(ctx, application.ID, withdrawable())
	if err != nil {
		return err
	}
	if !deleted {
		return errs.InvalidState("application status changed, it can no longer be withdrawn")
	}

	log.Infof("user %s withdrew application to job %s", application.ApplicantID, job.ID)
	s.bus.Publish(events.ApplicationWithdrawnTopic, events.ApplicationWithdrawn{
		JobID:       job.ID,
		ApplicantID: application.ApplicantID,
		Status:      application.Status,
	})
	return nil
}

type StatusUpdate struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateStatus moves an application along the transition table. Every caller,
// admins included, goes through the same table.
func (s *ApplicationService) UpdateStatus(ctx context.Context, jobID, applicantID string, update StatusUpdate,
	actor models.Actor) error {

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if !policy.CanMutateJob(job, actor) {
		return errs.Forbidden("only the job owner or an admin can change application status")
	}

	application, err := s.applications.GetByJobAndApplicant(ctx, job.ID, applicantID)
	if err != nil {
		return err
	}

	target, err := models.ParseApplicationStatus(update.Status)
	if err != nil {
		return errs.InvalidTransition(err.Error())
	}

	from := application.Status
	if !models.CanTransition(from, target) {
		return errs.InvalidTransition(transitionMessage(from, target))
	}

	updated, err := s.applications.UpdateStatus(ctx, application.ID, from, target, update.Notes)
	if err != nil {
		return err
	}
	if !updated {
		return errs.InvalidTransition(fmt.Sprintf("application is no longer %s", from))
	}

	log.Infof("application %s moved from %s to %s by %s", application.ID, from, target, actor.ID)
	s.bus.Publish(events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
		JobID:       job.ID,
		JobTitle:    job.Title,
		ApplicantID: application.ApplicantID,
		From:        from,
		To:          target,
		ChangedBy:   actor.ID,
	})
	return nil
}

func (s *ApplicationService) GetJobApplicants(ctx context.Context, jobID string, actor models.Actor) ([]models.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutateJob(job, actor) {
		return nil, errs.Forbidden("only the job owner or an admin can list applicants")
	}

	return s.applications.ListByJob(ctx, job.ID)
}

func (s *ApplicationService) GetMyApplications(ctx context.Context, actor models.Actor) ([]models.Application, error) {
	return s.applications.ListByApplicant(ctx, actor.ID)
}

func withdrawable() []models.ApplicationStatus {
	return lo.Filter(models.AllApplicationStatuses, func(status models.ApplicationStatus, _ int) bool {
		return status.IsWithdrawable()
	})
}

func transitionMessage(from, to models.ApplicationStatus) string {
	if from.IsTerminal() {
		return fmt.Sprintf("application is %s, which is final", from)
	}
	allowed := lo.Map(from.NextStatuses(), func(s models.ApplicationStatus, _ int) string { return string(s) })
	return fmt.Sprintf("cannot move application from %s to %s, allowed: %s", from, to, strings.Join(allowed, ", "))
}
