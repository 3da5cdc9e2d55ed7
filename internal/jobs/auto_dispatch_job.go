package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// AutoDispatchJob runs periodic dispatch rounds, offering the oldest pending
// order to the best eligible courier. Quiet outcomes (nothing pending, nobody
// eligible) and lost acceptance races are not logged as errors.
type AutoDispatchJob struct {
	handler  commands.DispatchPendingOrderCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoDispatchJob creates a job that runs one dispatch round per tick of
// the given cron schedule (seconds granularity).
func NewAutoDispatchJob(
	handler commands.DispatchPendingOrderCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AutoDispatchJob {
	return &AutoDispatchJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_dispatch_job"),
	}
}

// Start begins running dispatch rounds on the configured schedule.
func (j *AutoDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchPendingOrderCommand()

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			if errors.Is(handleErr, commands.ErrNoPendingOrders) ||
				errors.Is(handleErr, commands.ErrNoEligibleCouriers) {
				return
			}
			if errors.Is(handleErr, errs.ErrConflict) {
				// A courier accepted the order first. The round did its job.
				j.logger.InfoContext(ctx, "Dispatch round lost acceptance race")
				return
			}
			j.logger.ErrorContext(ctx, "Dispatch round failed", "error", handleErr)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the dispatch job.
func (j *AutoDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto dispatch job stopped")
}
