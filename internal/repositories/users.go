package repositories

import (
	"context"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) Create(ctx context.Context, user *models.User) error {
	return translate(repo.db.WithContext(ctx).Create(user).Error, "user")
}

func (repo *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := repo.db.WithContext(ctx).First(&user, "id = ?", models.NormalizeID(id)).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (repo *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := repo.db.WithContext(ctx).First(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// UpdateProfile writes only the editable profile columns.
func (repo *Users) UpdateProfile(ctx context.Context, user *models.User) error {
	res := repo.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":       user.Name,
			"bio":        user.Bio,
			"avatar_url": user.AvatarURL,
		})
	if res.Error != nil {
		return translate(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user")
	}
	return nil
}
