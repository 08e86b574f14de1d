package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/events"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Apply_WhenJobNotActive_ShouldReturnInvalidState(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)

	for _, status := range []string{"CLOSED", "DRAFT"} {
		_, err := env.jobs.UpdateJob(ctx, job.ID, JobPatch{Status: &status}, employer)
		require.NoError(t, err)

		err = env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{})
		assert.True(t, errs.Is(err, errs.KindInvalidState), status)
	}
}

func Test_Apply_WhenJobMissing_ShouldReturnNotFound(t *testing.T) {
	env := newTestEnv(t)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)

	err := env.apply.Apply(context.Background(), "missing", seeker.ID, ApplyInput{})
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func Test_Apply_WhenActorIsEmployerOrAdmin_ShouldReturnForbidden(t *testing.T) {
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	job := env.job(t, employer)

	assert.True(t, errs.Is(env.apply.Apply(context.Background(), job.ID, employer.ID, ApplyInput{}), errs.KindForbidden))
	assert.True(t, errs.Is(env.apply.Apply(context.Background(), job.ID, admin.ID, ApplyInput{}), errs.KindForbidden))
}

func Test_Apply_WhenAppliedTwice_ShouldReturnConflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)

	require.NoError(t, env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{Notes: "hello"}))
	err := env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{})

	assert.True(t, errs.Is(err, errs.KindConflict))
}

func Test_Apply_WhenCalledConcurrently_ShouldCreateSingleApplication(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)

	const attempts = 6
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errs.Is(err, errs.KindConflict))
	}
	assert.Equal(t, 1, succeeded)

	applicants, err := env.apply.GetJobApplicants(ctx, job.ID, employer)
	require.NoError(t, err)
	assert.Len(t, applicants, 1)
}

func Test_Apply_WhenResumeBelongsToOtherUser_ShouldReturnForbidden(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	other := env.user(t, "other@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)

	resume, err := env.resumes.AddResume(ctx, other, ResumeInput{FileName: "cv.pdf", URL: "https://files.example.com/cv.pdf"})
	require.NoError(t, err)

	err = env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{ResumeID: &resume.ID})
	assert.True(t, errs.Is(err, errs.KindForbidden))

	missing := "missing"
	err = env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{ResumeID: &missing})
	assert.True(t, errs.Is(err, errs.KindNotFound))

	err = env.apply.Apply(ctx, job.ID, other.ID, ApplyInput{ResumeID: &resume.ID})
	assert.NoError(t, err)
}

func Test_Apply_ShouldPublishSubmittedEvent(t *testing.T) {
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)

	var received []events.ApplicationSubmitted
	require.NoError(t, env.bus.Subscribe(events.ApplicationSubmittedTopic, func(e events.ApplicationSubmitted) {
		received = append(received, e)
	}))

	require.NoError(t, env.apply.Apply(context.Background(), job.ID, seeker.ID, ApplyInput{}))

	require.Len(t, received, 1)
	assert.Equal(t, employer.ID, received[0].EmployerID)
	assert.Equal(t, seeker.ID, received[0].ApplicantID)
}

func Test_UpdateStatus_ShouldFollowTransitionTable(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)
	require.NoError(t, env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{}))

	update := func(status string) error {
		return env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: status}, employer)
	}

	assert.True(errs.Is(update("ACCEPTED"), errs.KindInvalidTransition))
	assert.NoError(update("under_review"))
	assert.NoError(update("INTERVIEW_SCHEDULED"))
	assert.True(errs.Is(update("UNDER_REVIEW"), errs.KindInvalidTransition))
	assert.NoError(update("REJECTED"))
	assert.True(errs.Is(update("UNDER_REVIEW"), errs.KindInvalidTransition))
	assert.True(errs.Is(update("WITHDRAWN"), errs.KindInvalidTransition))

	applicants, err := env.apply.GetJobApplicants(ctx, job.ID, employer)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(models.StatusRejected, applicants[0].Status)
}

func Test_UpdateStatus_WhenTransitionRejected_ShouldExplainAllowedStatuses(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)
	require.NoError(t, env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{}))

	err := env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "ACCEPTED"}, employer)
	assert.ErrorContains(t, err, "allowed: UNDER_REVIEW, REJECTED")

	require.NoError(t, env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "REJECTED"}, employer))
	err = env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "UNDER_REVIEW"}, employer)
	assert.ErrorContains(t, err, "REJECTED, which is final")
}

func Test_UpdateStatus_WhenActorDoesNotOwnJob_ShouldReturnForbidden(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	otherEmployer := env.user(t, "other@example.com", models.RoleEmployer)
	admin := env.user(t, "admin@example.com", models.RoleAdmin)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)
	require.NoError(t, env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{}))

	err := env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "UNDER_REVIEW"}, otherEmployer)
	assert.True(t, errs.Is(err, errs.KindForbidden))

	_, err = env.apply.GetJobApplicants(ctx, job.ID, otherEmployer)
	assert.True(t, errs.Is(err, errs.KindForbidden))

	notes := "fast track"
	err = env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "UNDER_REVIEW", Notes: &notes}, admin)
	assert.NoError(t, err)
}

func Test_UpdateStatus_WhenActorIdDiffersOnlyInCase_ShouldAuthorize(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)
	job := env.job(t, employer)
	require.NoError(t, env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{}))

	shouting := models.Actor{ID: " " + strings.ToUpper(employer.ID) + " ", Role: employer.Role}
	err := env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "UNDER_REVIEW"}, shouting)
	assert.NoError(t, err)
}

func Test_Withdraw_ShouldOnlySucceedFromEarlyStatuses(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	job := env.job(t, employer)

	paths := map[models.ApplicationStatus][]string{
		models.StatusPending:            nil,
		models.StatusUnderReview:        {"UNDER_REVIEW"},
		models.StatusInterviewScheduled: {"UNDER_REVIEW", "INTERVIEW_SCHEDULED"},
		models.StatusAccepted:           {"UNDER_REVIEW", "INTERVIEW_SCHEDULED", "ACCEPTED"},
		models.StatusRejected:           {"REJECTED"},
	}

	for status, path := range paths {
		t.Run(string(status), func(t *testing.T) {
			seeker := env.user(t, strings.ToLower(string(status))+"@example.com", models.RoleJobSeeker)
			require.NoError(t, env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{}))
			for _, step := range path {
				require.NoError(t, env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: step}, employer))
			}

			err := env.apply.Withdraw(ctx, job.ID, seeker.ID)
			if status.IsWithdrawable() {
				assert.NoError(t, err)
				assert.True(t, errs.Is(env.apply.Withdraw(ctx, job.ID, seeker.ID), errs.KindNotFound))
			} else {
				assert.True(t, errs.Is(err, errs.KindInvalidState))
			}
		})
	}
}

func Test_ApplicationLifecycle_EndToEnd(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	env := newTestEnv(t)
	employer := env.user(t, "employer@example.com", models.RoleEmployer)
	seeker := env.user(t, "seeker@example.com", models.RoleJobSeeker)

	job := env.job(t, employer)
	assert.Equal(models.JobActive, job.Status)

	require.NoError(t, env.apply.Apply(ctx, job.ID, seeker.ID, ApplyInput{Notes: "keen"}))
	mine, err := env.apply.GetMyApplications(ctx, seeker)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(models.StatusPending, mine[0].Status)
	assert.Equal(job.Title, mine[0].Job.Title)

	require.NoError(t, env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "UNDER_REVIEW"}, employer))
	require.NoError(t, env.apply.Withdraw(ctx, job.ID, seeker.ID))

	err = env.apply.UpdateStatus(ctx, job.ID, seeker.ID, StatusUpdate{Status: "UNDER_REVIEW"}, employer)
	assert.True(errs.Is(err, errs.KindNotFound))
}
