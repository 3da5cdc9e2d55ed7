// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the coordination service.
//
// # Available Jobs
//
// 1. AutoDispatchJob - Runs a dispatch round per tick, offering the oldest
// pending order to the best eligible courier via the match engine
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch schedule is a six-field cron expression with seconds
// granularity, configured through AUTO_DISPATCH_SCHEDULE. "* * * * * *"
// runs a round every second.
//
// # Error Handling
//
// - Dispatch rounds ignore expected business outcomes (no pending orders,
// no eligible couriers)
// - A round that loses the acceptance race to a live courier logs at info
// level; the order still got dispatched
// - All other errors are logged and the schedule keeps running
package jobs
