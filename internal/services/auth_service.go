package services

import (
	"context"
	"strings"
	"time"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/clique77/job-portal-sub001/internal/security"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type tokenGenerator interface {
	Generate(user *models.User) (string, time.Time, error)
}

type AuthService struct {
	users  userRepository
	tokens tokenGenerator
}

func NewAuthService(users userRepository, tokens tokenGenerator) (*AuthService, error) {
	if users == nil || tokens == nil {
		return nil, errors.New("auth service requires users and tokens")
	}
	return &AuthService{users: users, tokens: tokens}, nil
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required"`
}

type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// Register creates job seekers and employers. Admin accounts are never
// self-registered.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	err := validateInput(input)

	role, roleErr := models.ToRole(input.Role)
	if input.Role != "" && (roleErr != nil || role == models.RoleAdmin) {
		err = mergeFieldErrors(err, map[string]string{"role": "must be job_seeker or employer"})
	}
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, errs.Internal("failed to hash password", err)
	}

	user := models.NewUser(input.Email, input.Name, role, hash)
	if err = s.users.Create(ctx, user); err != nil {
		if errs.Is(err, errs.KindConflict) {
			return nil, errs.Conflict("email already registered")
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to create user: %v", err)
		return nil, err
	}

	log.Infof("user %s registered as %s", user.ID, user.Role)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil, errs.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if !security.ComparePassword(user.PasswordHash, password) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).Warnf("failed login for user %s", user.ID)
		return nil, errs.Unauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, errs.Internal("failed to issue token", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, actor models.Actor) (*models.User, error) {
	return s.users.GetByID(ctx, actor.ID)
}

type ProfileInput struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor models.Actor, input ProfileInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err = s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
