package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoDispatchJob *AutoDispatchJob
}

// NewJobManager creates a job manager wiring the dispatch handler into the
// auto-dispatch schedule.
func NewJobManager(
	dispatchHandler commands.DispatchPendingOrderCommandHandler,
	dispatchSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoDispatchJob: NewAutoDispatchJob(dispatchHandler, dispatchSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.autoDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoDispatchJob.Stop()
}
