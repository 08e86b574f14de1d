package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/clique77/job-portal-sub001/internal/config"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/stretchr/testify/require"
)

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbContext, err := NewDbContext(config.DBConfig{
		ConnectionString: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())

	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func createUser(t *testing.T, users *Users, email string, role models.Role) *models.User {
	t.Helper()

	user := models.NewUser(email, "Test User", role, "hash")
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func createJob(t *testing.T, jobs *Jobs, employerID string, title string) *models.Job {
	t.Helper()

	job := models.NewJob(employerID)
	job.Title = title
	job.Description = "Build backend services"
	job.CompanyName = "Acme"
	job.Location = "Remote"
	job.Type = models.FullTime
	job.SalaryMin = 1000
	job.SalaryMax = 3000
	job.Tags = []string{"go", "sql"}
	require.NoError(t, jobs.Create(context.Background(), job))
	return job
}
