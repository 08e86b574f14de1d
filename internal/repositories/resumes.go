package repositories

import (
	"context"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"gorm.io/gorm"
)

type Resumes struct {
	db *gorm.DB
}

func NewResumesRepository(db *gorm.DB) *Resumes {
	return &Resumes{db: db}
}

func (repo *Resumes) Create(ctx context.Context, resume *models.Resume) error {
	return translate(repo.db.WithContext(ctx).Create(resume).Error, "resume")
}

func (repo *Resumes) GetByID(ctx context.Context, id string) (*models.Resume, error) {
	var resume models.Resume
	if err := repo.db.WithContext(ctx).First(&resume, "id = ?", models.NormalizeID(id)).Error; err != nil {
		return nil, translate(err, "resume")
	}
	return &resume, nil
}

func (repo *Resumes) ListByUser(ctx context.Context, userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", models.NormalizeID(userID)).
		Order("created_at DESC").
		Find(&resumes).Error; err != nil {
		return nil, translate(err, "resume")
	}
	return resumes, nil
}

func (repo *Resumes) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&models.Resume{}, "id = ?", models.NormalizeID(id))
	if res.Error != nil {
		return translate(res.Error, "resume")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "resume")
	}
	return nil
}
