package services

import (
	"context"
	"testing"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompany(t *testing.T, env *testEnv, owner models.Actor) *models.Company {
	t.Helper()

	company, err := env.companies.CreateCompany(context.Background(), owner, CompanyInput{
		Name:        " Acme ",
		Description: "Widgets",
		LogoURL:     "https://acme.example.com/logo.png",
	})
	require.NoError(t, err)
	return company
}

func Test_CreateCompany_ShouldCreateExactlyOneOwnerMembership(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)

	company := newCompany(t, env, owner)
	assert.Equal("Acme", company.Name)

	members, err := env.companies.ListCompanyMembers(ctx, company.ID)
	require.NoError(t, err)
	owners := lo.Filter(members, func(m models.UserCompany, _ int) bool { return m.Role == models.MemberOwner })
	require.Len(t, owners, 1)
	assert.Equal(owner.ID, owners[0].UserID)
	assert.Equal(models.MembershipActive, owners[0].Status)
}

func Test_CreateCompany_WhenNameMissing_ShouldReturnValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)

	_, err := env.companies.CreateCompany(context.Background(), owner, CompanyInput{LogoURL: "not a url"})

	require.True(t, errs.Is(err, errs.KindValidation))
	var domainErr *errs.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Fields, "name")
	assert.Contains(t, domainErr.Fields, "logoUrl")
}

func Test_UpdateCompany_WhenOutsiderUntilAddedAsAdmin_ShouldBeForbidden(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	outsider := env.user(t, "outsider@example.com", models.RoleEmployer)
	company := newCompany(t, env, owner)

	name := "Renamed"
	_, err := env.companies.UpdateCompany(ctx, company.ID, CompanyPatch{Name: &name}, outsider)
	assert.True(t, errs.Is(err, errs.KindForbidden))

	_, err = env.companies.AddUserToCompany(ctx, company.ID, outsider.ID, "admin", owner)
	require.NoError(t, err)

	updated, err := env.companies.UpdateCompany(ctx, company.ID, CompanyPatch{Name: &name}, outsider)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func Test_UpdateCompany_WhenMemberRole_ShouldBeForbidden(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	member := env.user(t, "member@example.com", models.RoleJobSeeker)
	company := newCompany(t, env, owner)

	_, err := env.companies.AddUserToCompany(ctx, company.ID, member.ID, "member", owner)
	require.NoError(t, err)

	name := "Renamed"
	_, err = env.companies.UpdateCompany(ctx, company.ID, CompanyPatch{Name: &name}, member)
	assert.True(t, errs.Is(err, errs.KindForbidden))
}

func Test_DeleteCompany_WhenNotOwner_ShouldBeForbidden(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	admin := env.user(t, "admin@example.com", models.RoleEmployer)
	company := newCompany(t, env, owner)
	_, err := env.companies.AddUserToCompany(ctx, company.ID, admin.ID, "admin", owner)
	require.NoError(t, err)

	assert.True(errs.Is(env.companies.DeleteCompany(ctx, company.ID, admin), errs.KindForbidden))
	assert.NoError(env.companies.DeleteCompany(ctx, company.ID, owner))

	_, err = env.companies.GetCompany(ctx, company.ID)
	assert.True(errs.Is(err, errs.KindNotFound))

	memberships, err := env.companies.ListUserCompanies(ctx, admin)
	require.NoError(t, err)
	assert.Empty(memberships)
}

func Test_AddUserToCompany_WhenAlreadyAssociated_ShouldReturnConflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	member := env.user(t, "member@example.com", models.RoleJobSeeker)
	company := newCompany(t, env, owner)

	_, err := env.companies.AddUserToCompany(ctx, company.ID, member.ID, "member", owner)
	require.NoError(t, err)

	_, err = env.companies.AddUserToCompany(ctx, company.ID, member.ID, "admin", owner)
	assert.True(t, errs.Is(err, errs.KindConflict))
}

func Test_AddUserToCompany_WhenRequesterIsMemberOrRoleIsOwner_ShouldReject(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	member := env.user(t, "member@example.com", models.RoleJobSeeker)
	newcomer := env.user(t, "newcomer@example.com", models.RoleJobSeeker)
	company := newCompany(t, env, owner)
	_, err := env.companies.AddUserToCompany(ctx, company.ID, member.ID, "member", owner)
	require.NoError(t, err)

	_, err = env.companies.AddUserToCompany(ctx, company.ID, newcomer.ID, "member", member)
	assert.True(errs.Is(err, errs.KindForbidden))

	_, err = env.companies.AddUserToCompany(ctx, company.ID, newcomer.ID, "owner", owner)
	assert.True(errs.Is(err, errs.KindValidation))

	_, err = env.companies.AddUserToCompany(ctx, company.ID, "missing", "member", owner)
	assert.True(errs.Is(err, errs.KindNotFound))
}

func Test_UpdateUserCompanyRole_WhenRequesterNotOwner_ShouldBeForbidden(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	admin := env.user(t, "admin@example.com", models.RoleEmployer)
	member := env.user(t, "member@example.com", models.RoleJobSeeker)
	company := newCompany(t, env, owner)
	_, err := env.companies.AddUserToCompany(ctx, company.ID, admin.ID, "admin", owner)
	require.NoError(t, err)
	_, err = env.companies.AddUserToCompany(ctx, company.ID, member.ID, "member", owner)
	require.NoError(t, err)

	_, err = env.companies.UpdateUserCompanyRole(ctx, company.ID, member.ID, "admin", admin)
	assert.True(errs.Is(err, errs.KindForbidden))

	_, err = env.companies.UpdateUserCompanyRole(ctx, company.ID, owner.ID, "member", owner)
	assert.True(errs.Is(err, errs.KindForbidden))

	promoted, err := env.companies.UpdateUserCompanyRole(ctx, company.ID, member.ID, "admin", owner)
	require.NoError(t, err)
	assert.Equal(models.MemberAdmin, promoted.Role)
}

func Test_RemoveUserFromCompany_WhenTargetIsOwner_ShouldAlwaysFail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	admin := env.user(t, "admin@example.com", models.RoleEmployer)
	company := newCompany(t, env, owner)
	_, err := env.companies.AddUserToCompany(ctx, company.ID, admin.ID, "admin", owner)
	require.NoError(t, err)

	for _, requester := range []models.Actor{owner, admin} {
		err = env.companies.RemoveUserFromCompany(ctx, company.ID, owner.ID, requester)
		assert.True(t, errs.Is(err, errs.KindForbidden))
	}
}

func Test_RemoveUserFromCompany_ShouldAllowSelfRemovalAndAdmins(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	admin := env.user(t, "admin@example.com", models.RoleEmployer)
	first := env.user(t, "first@example.com", models.RoleJobSeeker)
	second := env.user(t, "second@example.com", models.RoleJobSeeker)
	company := newCompany(t, env, owner)
	for userID, role := range map[string]string{admin.ID: "admin", first.ID: "member", second.ID: "member"} {
		_, err := env.companies.AddUserToCompany(ctx, company.ID, userID, role, owner)
		require.NoError(t, err)
	}

	assert.True(errs.Is(env.companies.RemoveUserFromCompany(ctx, company.ID, second.ID, first), errs.KindForbidden))
	assert.NoError(env.companies.RemoveUserFromCompany(ctx, company.ID, first.ID, first))
	assert.NoError(env.companies.RemoveUserFromCompany(ctx, company.ID, second.ID, admin))
	assert.True(errs.Is(env.companies.RemoveUserFromCompany(ctx, company.ID, second.ID, admin), errs.KindNotFound))

	members, err := env.companies.ListCompanyMembers(ctx, company.ID)
	require.NoError(t, err)
	assert.Len(members, 2)
}

func Test_UpdateUserCompanyRole_WhenRequesterNotOwnerAndTargetMissing_ShouldBeForbidden(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	outsider := env.user(t, "outsider@example.com", models.RoleEmployer)
	company := newCompany(t, env, owner)

	_, err := env.companies.UpdateUserCompanyRole(ctx, company.ID, "no-such-user", "admin", outsider)
	assert.True(errs.Is(err, errs.KindForbidden))

	_, err = env.companies.UpdateUserCompanyRole(ctx, company.ID, "no-such-user", "admin", owner)
	assert.True(errs.Is(err, errs.KindNotFound))
}

func Test_RemoveUserFromCompany_WhenRequesterNotMemberAndTargetMissing_ShouldBeForbidden(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com", models.RoleEmployer)
	outsider := env.user(t, "outsider@example.com", models.RoleEmployer)
	company := newCompany(t, env, owner)

	err := env.companies.RemoveUserFromCompany(ctx, company.ID, "no-such-user", outsider)
	assert.True(errs.Is(err, errs.KindForbidden))

	err = env.companies.RemoveUserFromCompany(ctx, company.ID, outsider.ID, outsider)
	assert.True(errs.Is(err, errs.KindNotFound))

	err = env.companies.RemoveUserFromCompany(ctx, company.ID, "no-such-user", owner)
	assert.True(errs.Is(err, errs.KindNotFound))
}
