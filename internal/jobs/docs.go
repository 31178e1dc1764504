// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
//  1. NotificationRetryJob - re-publishes order events whose first delivery to the
//     broker failed. Runs every 30 seconds unless NOTIFY_RETRY_SCHEDULE says otherwise.
//
// # Usage
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Register("notification retry", jobs.NewNotificationRetryJob(publisher, schedule, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed retry is logged and left for the next run. Failed job starts stop any
// job already running.
package jobs
