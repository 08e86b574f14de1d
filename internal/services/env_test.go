package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/clique77/job-portal-sub001/internal/config"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/repositories"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	bus          EventBus.Bus
	users        *repositories.CachedUsers
	jobsRepo     *repositories.Jobs
	memberships  *repositories.Memberships
	applications *repositories.Applications
	jobs         *JobService
	apply        *ApplicationService
	companies    *CompanyService
	saved        *SavedJobService
	resumes      *ResumeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbContext, err := repositories.NewDbContext(config.DBConfig{
		ConnectionString: filepath.Join(t.TempDir(), "services.db"),
	})
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	env := &testEnv{
		bus:          EventBus.New(),
		users:        repositories.NewCachedUsers(repositories.NewUsersRepository(dbContext.DB)),
		jobsRepo:     repositories.NewJobsRepository(dbContext.DB),
		memberships:  repositories.NewMembershipsRepository(dbContext.DB),
		applications: repositories.NewApplicationsRepository(dbContext.DB),
	}
	resumesRepo := repositories.NewResumesRepository(dbContext.DB)

	env.jobs, err = NewJobService(env.jobsRepo)
	require.NoError(t, err)

	env.apply, err = NewApplicationService(env.bus, env.jobsRepo, env.users, resumesRepo, env.applications)
	require.NoError(t, err)

	env.companies, err = NewCompanyService(env.bus, repositories.NewCompaniesRepository(dbContext.DB),
		env.memberships, env.users)
	require.NoError(t, err)

	env.saved, err = NewSavedJobService(env.jobsRepo, repositories.NewSavedJobsRepository(dbContext.DB))
	require.NoError(t, err)

	env.resumes, err = NewResumeService(resumesRepo)
	require.NoError(t, err)

	return env
}

func (env *testEnv) user(t *testing.T, email string, role models.Role) models.Actor {
	t.Helper()

	user := models.NewUser(email, "Test User", role, "hash")
	require.NoError(t, env.users.Create(context.Background(), user))
	return models.Actor{ID: user.ID, Role: user.Role}
}

func (env *testEnv) job(t *testing.T, employer models.Actor) *models.Job {
	t.Helper()

	job, err := env.jobs.CreateJob(context.Background(), employer, validJobInput())
	require.NoError(t, err)
	return job
}

func validJobInput() JobInput {
	return JobInput{
		Title:       "Go developer",
		Description: "Build and run backend services",
		CompanyName: "Acme",
		Location:    "Remote",
		SalaryMin:   1000,
		SalaryMax:   3000,
		Type:        "full-time",
		Tags:        []string{"Go", " go ", "SQL"},
	}
}
