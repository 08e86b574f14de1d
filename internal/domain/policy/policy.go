// Package policy holds the authorization rules applied before any mutation.
// Every function is pure: it only looks at the actor and the loaded aggregate.
package policy

import (
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/samber/lo"
)

func CanCreateJob(actor models.Actor) bool {
	return actor.Role == models.RoleEmployer || actor.Role == models.RoleAdmin
}

// CanMutateJob covers update, delete, listing applicants and changing their status.
func CanMutateJob(job *models.Job, actor models.Actor) bool {
	if job == nil {
		return false
	}
	return job.EmployerRef().Is(actor.ID) || actor.IsAdmin()
}

func CanApply(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role != models.RoleEmployer && user.Role != models.RoleAdmin
}

func CanWithdraw(app *models.Application) bool {
	return app != nil && app.Status.IsWithdrawable()
}

func CanUseResume(resume *models.Resume, actor models.Actor) bool {
	return resume != nil && resume.OwnerRef().Is(actor.ID)
}

// HoldsRole reports whether an active membership has one of roles.
func HoldsRole(membership *models.UserCompany, roles ...models.MembershipRole) bool {
	if membership == nil || !membership.IsActive() {
		return false
	}
	return lo.Contains(roles, membership.Role)
}

// CanUpdateCompany falls back to the company creator only when the actor has
// no membership record at all.
func CanUpdateCompany(company *models.Company, membership *models.UserCompany, actor models.Actor) bool {
	if company == nil {
		return false
	}
	if membership == nil {
		return company.CreatorRef().Is(actor.ID)
	}
	return HoldsRole(membership, models.MemberOwner, models.MemberAdmin)
}

func CanDeleteCompany(membership *models.UserCompany) bool {
	return HoldsRole(membership, models.MemberOwner)
}

func CanAddMember(requester *models.UserCompany) bool {
	return HoldsRole(requester, models.MemberOwner, models.MemberAdmin)
}

// CanChangeMemberRole never lets the owner's own role change.
func CanChangeMemberRole(requester, target *models.UserCompany) bool {
	if target == nil || target.Role == models.MemberOwner {
		return false
	}
	return HoldsRole(requester, models.MemberOwner)
}

// CanRemoveMember allows self-removal, except for the owner who can never be
// removed by anyone.
func CanRemoveMember(requester, target *models.UserCompany, actor models.Actor) bool {
	if target == nil || target.Role == models.MemberOwner {
		return false
	}
	if target.UserRef().Is(actor.ID) {
		return true
	}
	return HoldsRole(requester, models.MemberOwner, models.MemberAdmin)
}
