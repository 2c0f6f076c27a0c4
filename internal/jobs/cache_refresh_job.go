package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CacheRefreshJobName is the scheduler name of the reference cache refresh
const CacheRefreshJobName = "cache_refresh"

// DefaultWarmTimeout bounds reloading the caches after a refresh
const DefaultWarmTimeout = 30 * time.Second

// CacheInvalidator clears the reference data caches
type CacheInvalidator interface {
	InvalidateAll() []string
}

// CacheRefreshJob periodically drops the accessorial, air table and ZIP caches
// so edits made directly in the database are picked up without a restart.
type CacheRefreshJob struct {
	caches  CacheInvalidator
	warm    func(ctx context.Context) error
	logger  *zap.Logger
	timeout time.Duration
}

// NewCacheRefreshJob creates the job. warm, when set, runs after the caches
// are cleared so the next quote does not pay for the reload.
func NewCacheRefreshJob(caches CacheInvalidator, warm func(ctx context.Context) error, logger *zap.Logger, timeout time.Duration) *CacheRefreshJob {
	if timeout <= 0 {
		timeout = DefaultWarmTimeout
	}
	return &CacheRefreshJob{
		caches:  caches,
		warm:    warm,
		logger:  logger,
		timeout: timeout,
	}
}

// Run clears and optionally re-warms the caches
func (j *CacheRefreshJob) Run() {
	start := time.Now()
	cleared := j.caches.InvalidateAll()

	if j.warm != nil {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		if err := j.warm(ctx); err != nil {
			j.logger.Warn("cache warm-up failed, caches will load on next use", zap.Error(err))
		}
	}

	j.logger.Info("reference caches refreshed",
		zap.Strings("cleared", cleared),
		zap.Duration("duration", time.Since(start)))
}

// RegisterCacheRefreshJob adds the cache refresh job to the scheduler
func RegisterCacheRefreshJob(scheduler *Scheduler, caches CacheInvalidator, warm func(ctx context.Context) error, logger *zap.Logger, cronExpr string) error {
	job := NewCacheRefreshJob(caches, warm, logger, DefaultWarmTimeout)
	return scheduler.AddJob(CacheRefreshJobName, cronExpr, job.Run)
}
