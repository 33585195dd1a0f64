// Package jobs provides scheduled background tasks for the cafeteria service.
//
// Jobs use github.com/robfig/cron/v3 with a leading seconds field.
//
// # Available Jobs
//
// 1. BillingSummaryJob - totals the previous billing month and logs the result, so that the
// close of a month leaves a record in the logs before administrators reconcile it.
//
// # Usage
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Add("billing summary", jobs.NewBillingSummaryJob(spec, handler, clock, location, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Failed job starts stop any
// already running jobs.
package jobs
