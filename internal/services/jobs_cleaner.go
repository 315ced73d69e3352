package services

import (
	"context"
	"time"

	"github.com/maxaizer/gig-market/internal/logger"
	"github.com/maxaizer/gig-market/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type jobCleanupRepository interface {
	RemoveOldCompleted(ctx context.Context, completedBefore time.Time) (int64, error)
}

// CompletedJobsCleaner purges completed jobs past their retention window
// once a day.
type CompletedJobsCleaner struct {
	jobs            jobCleanupRepository
	cron            *cron.Cron
	retentionInDays int
}

func NewCompletedJobsCleaner(jobs jobCleanupRepository, retentionInDays int) (*CompletedJobsCleaner, error) {

	if retentionInDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	c := &CompletedJobsCleaner{
		jobs:            jobs,
		cron:            cron.New(),
		retentionInDays: retentionInDays,
	}

	_, err := c.cron.AddFunc("0 0 * * *", c.cleanOldJobs)
	if err != nil {
		return nil, err
	}

	c.cron.Start()
	log.Infof("completed jobs cleaner started, retention in days: %d", c.retentionInDays)
	return c, nil
}

func (c *CompletedJobsCleaner) Stop() {
	c.cron.Stop()
}

func (c *CompletedJobsCleaner) cleanOldJobs() {
	cutoff := time.Now().Add(-time.Duration(c.retentionInDays) * 24 * time.Hour)
	rowsAffected, err := c.jobs.RemoveOldCompleted(context.Background(), cutoff)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCleaner).
			Errorf("failed to clean old completed jobs: %v", err)
		return
	}
	metrics.CleanedJobsCounter.Add(float64(rowsAffected))
	log.Infof("old completed jobs cleaned, affected rows: %v", rowsAffected)
}
