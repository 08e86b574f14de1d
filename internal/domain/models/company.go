package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	CreatedByID string    `gorm:"not null;index" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCompany(name, description, logoURL, createdByID string) *Company {
	return &Company{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		LogoURL:     strings.TrimSpace(logoURL),
		CreatedByID: createdByID,
	}
}

func (c *Company) CreatorRef() UserRef {
	return UserRef{ID: c.CreatedByID}
}

type MembershipRole string

const (
	MemberOwner  MembershipRole = "owner"
	MemberAdmin  MembershipRole = "admin"
	MemberMember MembershipRole = "member"
)

func ToMembershipRole(s string) (MembershipRole, bool) {
	switch MembershipRole(strings.ToLower(strings.TrimSpace(s))) {
	case MemberOwner:
		return MemberOwner, true
	case MemberAdmin:
		return MemberAdmin, true
	case MemberMember:
		return MemberMember, true
	default:
		return "", false
	}
}

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "ACTIVE"
	MembershipPending  MembershipStatus = "PENDING"
	MembershipRejected MembershipStatus = "REJECTED"
)

// UserCompany binds a user to a company. (UserID, CompanyID) is unique.
type UserCompany struct {
	ID        string           `gorm:"primaryKey" json:"id"`
	UserID    string           `gorm:"not null;uniqueIndex:idx_user_company" json:"userId"`
	CompanyID string           `gorm:"not null;uniqueIndex:idx_user_company;index" json:"companyId"`
	User      *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company   *Company         `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Role      MembershipRole   `gorm:"not null" json:"role"`
	Status    MembershipStatus `gorm:"not null" json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func NewMembership(userID, companyID string, role MembershipRole) *UserCompany {
	return &UserCompany{
		ID:        uuid.NewString(),
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		Status:    MembershipActive,
	}
}

func (m *UserCompany) UserRef() UserRef {
	return UserRef{ID: m.UserID, User: m.User}
}

func (m *UserCompany) IsActive() bool {
	return m.Status == MembershipActive
}
