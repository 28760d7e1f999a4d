package jobs

import (
	"context"
	"fmt"

	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// Cached signal families flushed by the cleanup job. Geocode entries are
// kept: addresses do not move.
var cleanupPatterns = []string{
	"aqi:*",
	"road_access:*",
}

// CacheCleanupJob flushes cached signal readings so the next evaluation
// re-fetches fresh data.
type CacheCleanupJob struct {
	cache  *redis.Cache
	logger *logger.Logger
}

// NewCacheCleanupJob creates a new cache cleanup job
func NewCacheCleanupJob(cache *redis.Cache, log *logger.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cache:  cache,
		logger: log,
	}
}

// Name returns the job name
func (j *CacheCleanupJob) Name() string {
	return "signal_cache_cleanup"
}

// Schedule returns the cron schedule (every day at 3 AM)
func (j *CacheCleanupJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run executes the cache cleanup
func (j *CacheCleanupJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled signal cache cleanup")

	var removed int64
	for _, pattern := range cleanupPatterns {
		n, err := j.cache.DeleteByPattern(ctx, pattern)
		if err != nil {
			return fmt.Errorf("failed to flush pattern %s: %w", pattern, err)
		}
		removed += n
	}

	j.logger.WithField("removed", removed).Info("Signal cache cleanup completed")
	return nil
}
