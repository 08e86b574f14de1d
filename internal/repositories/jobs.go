package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Create(ctx context.Context, job *models.Job) error {
	return translate(repo.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error, "job")
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", models.NormalizeID(id)).Error; err != nil {
		return nil, translate(err, "job")
	}
	return &job, nil
}

// Update overwrites the posting columns; applications are never touched here.
func (repo *Jobs) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	res := repo.db.WithContext(ctx).Model(&models.Job{ID: job.ID}).
		Select("title", "description", "requirements", "company_name", "location", "salary_min",
			"salary_max", "type", "category", "tags", "status", "expires_at", "updated_at").
		Updates(job)
	if res.Error != nil {
		return translate(res.Error, "job")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "job")
	}
	return nil
}

// Delete removes the job together with its applications and bookmarks.
func (repo *Jobs) Delete(ctx context.Context, id string) error {
	id = models.NormalizeID(id)
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return translate(err, "application")
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.SavedJob{}).Error; err != nil {
			return translate(err, "saved job")
		}
		res := tx.Delete(&models.Job{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "job")
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "job")
		}
		return nil
	})
}

func (repo *Jobs) Search(ctx context.Context, filter models.JobFilter) ([]models.Job, int64, error) {
	filter = filter.Normalize()

	query := repo.db.WithContext(ctx).Model(&models.Job{}).Where("status = ?", filter.Status)
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}
	if filter.Tag != "" {
		query = query.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.SalaryMin > 0 {
		query = query.Where("salary_max >= ?", filter.SalaryMin)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "job")
	}

	var jobs []models.Job
	if err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset()).
		Find(&jobs).Error; err != nil {
		return nil, 0, translate(err, "job")
	}
	return jobs, total, nil
}

func (repo *Jobs) ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	if err := repo.db.WithContext(ctx).
		Where("employer_id = ?", models.NormalizeID(employerID)).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, translate(err, "job")
	}
	return jobs, nil
}

func (repo *Jobs) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&models.Job{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.JobActive, now.UTC()).
		Update("status", models.JobClosed)
	return res.RowsAffected, translate(res.Error, "job")
}
