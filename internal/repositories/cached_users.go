package repositories

import (
	"context"
	"time"

	"github.com/clique77/job-portal-sub001/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

// CachedUsers memoizes lookups by id. Profile updates evict the entry.
type CachedUsers struct {
	repo  userRepository
	cache *gocache.Cache
}

func NewCachedUsers(repo userRepository) *CachedUsers {
	return &CachedUsers{repo: repo, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (c *CachedUsers) Create(ctx context.Context, user *models.User) error {
	return c.repo.Create(ctx, user)
}

func (c *CachedUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	key := models.NormalizeID(id)
	if value, found := c.cache.Get(key); found {
		user := value.(models.User)
		return &user, nil
	}

	user, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(key, *user)
	return user, nil
}

func (c *CachedUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return c.repo.GetByEmail(ctx, email)
}

func (c *CachedUsers) UpdateProfile(ctx context.Context, user *models.User) error {
	c.cache.Delete(models.NormalizeID(user.ID))
	return c.repo.UpdateProfile(ctx, user)
}
