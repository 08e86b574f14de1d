package services

import (
	"context"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/events"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/domain/policy"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type companyRepository interface {
	CreateWithOwner(ctx context.Context, company *models.Company, owner *models.UserCompany) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context, limit int, offset int) ([]models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	DeleteWithMemberships(ctx context.Context, id string) error
}

type membershipRepository interface {
	Create(ctx context.Context, membership *models.UserCompany) error
	Get(ctx context.Context, userID, companyID string) (*models.UserCompany, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.UserCompany, error)
	ListByUser(ctx context.Context, userID string) ([]models.UserCompany, error)
	UpdateRole(ctx context.Context, id string, role models.MembershipRole) error
	Delete(ctx context.Context, id string) error
}

type CompanyService struct {
	bus         EventBus.Bus
	companies   companyRepository
	memberships membershipRepository
	users       userLookup
}

func NewCompanyService(bus EventBus.Bus, companies companyRepository, memberships membershipRepository,
	users userLookup) (*CompanyService, error) {

	if bus == nil || companies == nil || memberships == nil || users == nil {
		return nil, errors.New("company service requires bus, companies, memberships and users")
	}
	return &CompanyService{bus: bus, companies: companies, memberships: memberships, users: users}, nil
}

type CompanyInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=5000"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
}

type CompanyPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,url"`
}

// CreateCompany stores the company with the actor as its single ACTIVE owner.
func (s *CompanyService) CreateCompany(ctx context.Context, actor models.Actor, input CompanyInput) (*models.Company, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, actor.ID); err != nil {
		return nil, err
	}

	company := models.NewCompany(input.Name, input.Description, input.LogoURL, actor.ID)
	owner := models.NewMembership(actor.ID, company.ID, models.MemberOwner)

	if err := s.companies.CreateWithOwner(ctx, company, owner); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to create company: %v", err)
		return nil, err
	}

	log.Infof("company %s created by %s", company.ID, actor.ID)
	s.bus.Publish(events.CompanyCreatedTopic, events.CompanyCreated{
		CompanyID: company.ID,
		Name:      company.Name,
		OwnerID:   actor.ID,
	})
	return company, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, companyID string, patch CompanyPatch,
	actor models.Actor) (*models.Company, error) {

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	membership, err := s.membershipOf(ctx, actor.ID, company.ID)
	if err != nil {
		return nil, err
	}

	if !policy.CanUpdateCompany(company, membership, actor) {
		return nil, errs.Forbidden("only company owners and admins can update the company")
	}

	if err = validateInput(patch); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		company.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		company.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.LogoURL != nil {
		company.LogoURL = strings.TrimSpace(*patch.LogoURL)
	}

	if company.Name == "" {
		return nil, errs.Validation("invalid input", map[string]string{"name": "is required"})
	}

	if err = s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, companyID string, actor models.Actor) error {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}

	membership, err := s.membershipOf(ctx, actor.ID, company.ID)
	if err != nil {
		return err
	}

	if !policy.CanDeleteCompany(membership) {
		return errs.Forbidden("only the company owner can delete the company")
	}

	if err = s.companies.DeleteWithMemberships(ctx, company.ID); err != nil {
		return err
	}

	log.Infof("company %s deleted by %s", company.ID, actor.ID)
	return nil
}

// AddUserToCompany binds userID to the company as admin or member. The
// ownership role is only ever granted at creation.
func (s *CompanyService) AddUserToCompany(ctx context.Context, companyID, userID, role string,
	actor models.Actor) (*models.UserCompany, error) {

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	requester, err := s.membershipOf(ctx, actor.ID, company.ID)
	if err != nil {
		return nil, err
	}

	if !policy.CanAddMember(requester) {
		return nil, errs.Forbidden("only company owners and admins can add members")
	}

	membershipRole, err := parseAssignableRole(role)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	membership := models.NewMembership(user.ID, company.ID, membershipRole)
	if err = s.memberships.Create(ctx, membership); err != nil {
		if errs.Is(err, errs.KindConflict) {
			return nil, errs.Conflict("user already associated with company")
		}
		return nil, err
	}

	log.Infof("user %s added to company %s as %s by %s", user.ID, company.ID, membershipRole, actor.ID)
	return membership, nil
}

func (s *CompanyService) UpdateUserCompanyRole(ctx context.Context, companyID, userID, role string,
	actor models.Actor) (*models.UserCompany, error) {

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	requester, err := s.membershipOf(ctx, actor.ID, company.ID)
	if err != nil {
		return nil, err
	}

	if !policy.HoldsRole(requester, models.MemberOwner) {
		return nil, errs.Forbidden("only the company owner can change member roles")
	}

	target, err := s.memberships.Get(ctx, userID, company.ID)
	if err != nil {
		return nil, err
	}

	if !policy.CanChangeMemberRole(requester, target) {
		return nil, errs.Forbidden("the owner role cannot be changed")
	}

	membershipRole, err := parseAssignableRole(role)
	if err != nil {
		return nil, err
	}

	if err = s.memberships.UpdateRole(ctx, target.ID, membershipRole); err != nil {
		return nil, err
	}

	log.Infof("member %s of company %s changed from %s to %s", target.UserID, company.ID, target.Role, membershipRole)
	target.Role = membershipRole
	return target, nil
}

func (s *CompanyService) RemoveUserFromCompany(ctx context.Context, companyID, userID string, actor models.Actor) error {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}

	requester, err := s.membershipOf(ctx, actor.ID, company.ID)
	if err != nil {
		return err
	}

	self := models.UserRef{ID: userID}.Is(actor.ID)
	if !self && !policy.HoldsRole(requester, models.MemberOwner, models.MemberAdmin) {
		return errs.Forbidden("only company owners and admins can remove other members")
	}

	target, err := s.memberships.Get(ctx, userID, company.ID)
	if err != nil {
		return err
	}

	if target.Role == models.MemberOwner {
		return errs.Forbidden("the company owner cannot be removed")
	}

	if !policy.CanRemoveMember(requester, target, actor) {
		return errs.Forbidden("only company owners and admins can remove other members")
	}

	if err = s.memberships.Delete(ctx, target.ID); err != nil {
		return err
	}

	log.Infof("member %s removed from company %s by %s", target.UserID, company.ID, actor.ID)
	return nil
}

func (s *CompanyService) GetCompany(ctx context.Context, companyID string) (*models.Company, error) {
	return s.companies.GetByID(ctx, companyID)
}

func (s *CompanyService) ListCompanies(ctx context.Context, page, limit int) ([]models.Company, error) {
	limit, offset := pageBounds(page, limit)
	return s.companies.List(ctx, limit, offset)
}

func (s *CompanyService) ListCompanyMembers(ctx context.Context, companyID string) ([]models.UserCompany, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.memberships.ListByCompany(ctx, company.ID)
}

func (s *CompanyService) ListUserCompanies(ctx context.Context, actor models.Actor) ([]models.UserCompany, error) {
	return s.memberships.ListByUser(ctx, actor.ID)
}

// membershipOf returns nil without error when the user has no membership.
func (s *CompanyService) membershipOf(ctx context.Context, userID, companyID string) (*models.UserCompany, error) {
	membership, err := s.memberships.Get(ctx, userID, companyID)
	if errs.Is(err, errs.KindNotFound) {
		return nil, nil
	}
	return membership, err
}

func parseAssignableRole(role string) (models.MembershipRole, error) {
	parsed, ok := models.ToMembershipRole(role)
	if !ok || parsed == models.MemberOwner {
		return "", errs.Validation("invalid input", map[string]string{"role": "must be admin or member"})
	}
	return parsed, nil
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.DefaultPageSize
	}
	if limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}
	return limit, (page - 1) * limit
}
