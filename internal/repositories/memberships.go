package repositories

import (
	"context"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Memberships struct {
	db *gorm.DB
}

func NewMembershipsRepository(db *gorm.DB) *Memberships {
	return &Memberships{db: db}
}

func (repo *Memberships) Create(ctx context.Context, membership *models.UserCompany) error {
	return translate(repo.db.WithContext(ctx).Omit(clause.Associations).Create(membership).Error, "membership")
}

func (repo *Memberships) Get(ctx context.Context, userID, companyID string) (*models.UserCompany, error) {
	var membership models.UserCompany
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", models.NormalizeID(userID), models.NormalizeID(companyID)).
		First(&membership).Error; err != nil {
		return nil, translate(err, "membership")
	}
	return &membership, nil
}

func (repo *Memberships) ListByCompany(ctx context.Context, companyID string) ([]models.UserCompany, error) {
	var memberships []models.UserCompany
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ?", models.NormalizeID(companyID)).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, translate(err, "membership")
	}
	return memberships, nil
}

func (repo *Memberships) ListByUser(ctx context.Context, userID string) ([]models.UserCompany, error) {
	var memberships []models.UserCompany
	if err := repo.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ?", models.NormalizeID(userID)).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, translate(err, "membership")
	}
	return memberships, nil
}

// UpdateRole never touches an owner row, whatever the caller decided.
func (repo *Memberships) UpdateRole(ctx context.Context, id string, role models.MembershipRole) error {
	res := repo.db.WithContext(ctx).Model(&models.UserCompany{}).
		Where("id = ? AND role <> ?", id, models.MemberOwner).
		Update("role", role)
	if res.Error != nil {
		return translate(res.Error, "membership")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "membership")
	}
	return nil
}

func (repo *Memberships) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND role <> ?", id, models.MemberOwner).
		Delete(&models.UserCompany{})
	if res.Error != nil {
		return translate(res.Error, "membership")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "membership")
	}
	return nil
}
