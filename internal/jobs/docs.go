// Package jobs provides scheduled background tasks for the subcontract service.
//
// Jobs are built on github.com/robfig/cron/v3 with the seconds field enabled.
//
// # Available Jobs
//
// OverdueOrdersJob scans for open orders whose expected return date has
// passed while goods are still at the subcontractor, and logs each one.
// It runs on OVERDUE_SCAN_SCHEDULE, every five minutes by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Register("overdue orders",
//		jobs.NewOverdueOrdersJob(overdueHandler, cfg.OverdueScanSchedule, time.Now, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed scan is logged and retried on the next tick. A job that fails to
// start stops the jobs started before it.
package jobs
