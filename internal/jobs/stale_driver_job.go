// Package jobs provides scheduled background tasks for the dispatch
// service, built on github.com/robfig/cron/v3. The jobs are owned by a
// JobManager that the composition root starts after wiring and stops on
// shutdown.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleDriverJob sweeps available drivers that stopped reporting their
// location. Runs every minute; drivers whose last report is older than the
// configured window are flipped to offline so the dispatcher stops offering
// them orders. Busy drivers are never touched.
type StaleDriverJob struct {
	handler    commands.SweepStaleDriversCommandHandler
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleDriverJob creates the sweep job with the given staleness window.
func NewStaleDriverJob(
	handler commands.SweepStaleDriversCommandHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *StaleDriverJob {
	return &StaleDriverJob{
		handler:    handler,
		staleAfter: staleAfter,
		cron:       cron.New(),
		logger:     logger.With("component", "stale_driver_job"),
	}
}

// Start begins the sweep job to run every minute.
func (j *StaleDriverJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewSweepStaleDriversCommand(j.staleAfter)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale driver sweep misconfigured", "error", cmdErr)
			return
		}

		swept, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale driver sweep failed", "error", handleErr)
			return
		}
		if swept > 0 {
			j.logger.InfoContext(ctx, "Stale drivers taken offline", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale driver job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *StaleDriverJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale driver job stopped")
}
