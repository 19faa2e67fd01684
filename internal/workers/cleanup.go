//go:generate mockgen -source=cleanup.go -destination=mock_cleanup.go -package=workers

// Package workers runs background jobs.
package workers

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
)

// DefaultCleanupInterval is used when no interval is configured.
const DefaultCleanupInterval = 5 * time.Minute

// ExpiredDeleter removes pending verifications that expired at or before now.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// CleanupJob purges expired pending verifications.
type CleanupJob struct {
	store    ExpiredDeleter
	interval time.Duration
	now      func() time.Time
}

// NewCleanupJob creates a CleanupJob that runs every interval.
func NewCleanupJob(store ExpiredDeleter, interval time.Duration) *CleanupJob {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CleanupJob{
		store:    store,
		interval: interval,
		now:      time.Now,
	}
}

// Run deletes expired entries once.
func (j *CleanupJob) Run(ctx context.Context) error {
	start := j.now()

	deleted, err := j.store.DeleteExpired(ctx, start)
	if err != nil {
		logger.Log.Errorw("verification cleanup failed", "err", err)
		return err
	}

	logger.Log.Infow("verification cleanup finished",
		"deleted_count", deleted,
		"duration", time.Since(start),
	)
	return nil
}

// Start runs the job on every tick until ctx is done.
func (j *CleanupJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	logger.Log.Infow("verification cleanup started", "interval", j.interval)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Infow("verification cleanup stopped")
			return
		case <-ticker.C:
			_ = j.Run(ctx)
		}
	}
}
