package services

import (
	"context"
	"time"

	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/clique77/job-portal-sub001/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expiredJobsRepository interface {
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// JobsCloser periodically closes ACTIVE jobs whose deadline has passed, so
// they stop accepting applications.
type JobsCloser struct {
	jobs expiredJobsRepository
	cron *cron.Cron
}

func NewJobsCloser(jobs expiredJobsRepository, schedule string) (*JobsCloser, error) {
	if jobs == nil {
		return nil, errors.New("jobs closer requires a job repository")
	}

	jc := &JobsCloser{
		jobs: jobs,
		cron: cron.New(),
	}

	_, err := jc.cron.AddFunc(schedule, func() { jc.closeExpired(context.Background()) })
	if err != nil {
		return nil, errors.Wrapf(err, "invalid schedule %q", schedule)
	}

	return jc, nil
}

func (jc *JobsCloser) Start() {
	jc.cron.Start()
	log.Info("jobs closer started")
}

func (jc *JobsCloser) Stop() {
	<-jc.cron.Stop().Done()
}

func (jc *JobsCloser) closeExpired(ctx context.Context) int64 {
	closed, err := jc.jobs.CloseExpired(ctx, time.Now())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to close expired jobs: %v", err)
		return 0
	}

	metrics.JobsClosed.Add(float64(closed))
	if closed > 0 {
		log.Infof("closed %d expired jobs", closed)
	}
	return closed
}
