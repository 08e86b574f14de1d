package repositories

import (
	"context"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Companies struct {
	db *gorm.DB
}

func NewCompaniesRepository(db *gorm.DB) *Companies {
	return &Companies{db: db}
}

// CreateWithOwner writes the company and its owner membership in one
// transaction. Neither row survives if the other insert fails.
func (repo *Companies) CreateWithOwner(ctx context.Context, company *models.Company, owner *models.UserCompany) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(company).Error; err != nil {
			return translate(err, "company")
		}
		if err := tx.Omit(clause.Associations).Create(owner).Error; err != nil {
			return translate(err, "membership")
		}
		return nil
	})
}

func (repo *Companies) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := repo.db.WithContext(ctx).First(&company, "id = ?", models.NormalizeID(id)).Error; err != nil {
		return nil, translate(err, "company")
	}
	return &company, nil
}

func (repo *Companies) List(ctx context.Context, limit int, offset int) ([]models.Company, error) {
	var companies []models.Company
	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error; err != nil {
		return nil, translate(err, "company")
	}
	return companies, nil
}

func (repo *Companies) Update(ctx context.Context, company *models.Company) error {
	res := repo.db.WithContext(ctx).Model(&models.Company{}).Where("id = ?", company.ID).
		Updates(map[string]any{
			"name":        company.Name,
			"description": company.Description,
			"logo_url":    company.LogoURL,
		})
	if res.Error != nil {
		return translate(res.Error, "company")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "company")
	}
	return nil
}

// DeleteWithMemberships removes the company and every membership bound to it.
func (repo *Companies) DeleteWithMemberships(ctx context.Context, id string) error {
	id = models.NormalizeID(id)
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&models.UserCompany{}).Error; err != nil {
			return translate(err, "membership")
		}
		res := tx.Delete(&models.Company{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "company")
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "company")
		}
		return nil
	})
}
