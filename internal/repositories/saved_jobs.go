package repositories

import (
	"context"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedJobs struct {
	db *gorm.DB
}

func NewSavedJobsRepository(db *gorm.DB) *SavedJobs {
	return &SavedJobs{db: db}
}

func (repo *SavedJobs) Create(ctx context.Context, saved *models.SavedJob) error {
	return translate(repo.db.WithContext(ctx).Omit(clause.Associations).Create(saved).Error, "saved job")
}

func (repo *SavedJobs) Delete(ctx context.Context, userID, jobID string) error {
	res := repo.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", models.NormalizeID(userID), models.NormalizeID(jobID)).
		Delete(&models.SavedJob{})
	if res.Error != nil {
		return translate(res.Error, "saved job")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "saved job")
	}
	return nil
}

func (repo *SavedJobs) ListByUser(ctx context.Context, userID string) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	if err := repo.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", models.NormalizeID(userID)).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return nil, translate(err, "saved job")
	}
	return saved, nil
}
