package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type CleanupJob struct {
	logger        *Logger
	log           zerolog.Logger
	retentionDays int
	now           func() time.Time
}

func NewCleanupJob(logger *Logger, retentionDays int, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		logger:        logger,
		log:           log.With().Str("component", "audit_cleanup").Logger(),
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Run purges events older than the retention window once.
func (j *CleanupJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.now().AddDate(0, 0, -j.retentionDays)

	rows, err := j.logger.Purge(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge audit logs: %w", err)
	}

	j.log.Info().Int64("rows", rows).Time("cutoff", cutoff).Msg("audit logs purged")
	return rows, nil
}

// Schedule registers the job on a new cron scheduler and starts it.
// The caller stops the returned scheduler on shutdown.
func (j *CleanupJob) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.log.Error().Err(err).Msg("audit cleanup failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule audit cleanup %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
