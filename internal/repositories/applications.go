package repositories

import (
	"context"
	"time"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Applications stores one row per (job, applicant). The unique index on that
// pair makes a second insert fail with a conflict.
type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (repo *Applications) Create(ctx context.Context, application *models.Application) error {
	return translate(repo.db.WithContext(ctx).Omit(clause.Associations).Create(application).Error, "application")
}

func (repo *Applications) GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*models.Application, error) {
	var application models.Application
	if err := repo.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", models.NormalizeID(jobID), models.NormalizeID(applicantID)).
		First(&application).Error; err != nil {
		return nil, translate(err, "application")
	}
	return &application, nil
}

func (repo *Applications) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var applications []models.Application
	if err := repo.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id = ?", models.NormalizeID(jobID)).
		Order("applied_at ASC").
		Find(&applications).Error; err != nil {
		return nil, translate(err, "application")
	}
	return applications, nil
}

func (repo *Applications) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	var applications []models.Application
	if err := repo.db.WithContext(ctx).
		Preload("Job").
		Where("applicant_id = ?", models.NormalizeID(applicantID)).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, translate(err, "application")
	}
	return applications, nil
}

// DeleteIfStatus removes the application only while it is still in one of
// statuses. The returned flag is false when nothing matched.
func (repo *Applications) DeleteIfStatus(ctx context.Context, id string, statuses []models.ApplicationStatus) (bool, error) {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND status IN ?", id, statuses).
		Delete(&models.Application{})
	if res.Error != nil {
		return false, translate(res.Error, "application")
	}
	return res.RowsAffected > 0, nil
}

// UpdateStatus moves the application from one status to another. It matches
// on the expected current status so a concurrent change is never overwritten.
func (repo *Applications) UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus,
	notes *string) (bool, error) {

	values := map[string]any{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		values["notes"] = *notes
	}

	res := repo.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return false, translate(res.Error, "application")
	}
	return res.RowsAffected > 0, nil
}
