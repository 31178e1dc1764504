package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultNotificationRetrySchedule runs the retry every 30 seconds.
const DefaultNotificationRetrySchedule = "*/30 * * * * *"

// PendingRetrier re-sends order events whose first delivery failed.
type PendingRetrier interface {
	RetryPending(ctx context.Context) (int, error)
	Pending() int
}

// NotificationRetryJob periodically re-publishes buffered order events.
type NotificationRetryJob struct {
	retrier  PendingRetrier
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationRetryJob creates the job. schedule is a cron spec with seconds;
// an empty schedule uses DefaultNotificationRetrySchedule.
func NewNotificationRetryJob(retrier PendingRetrier, schedule string, logger *slog.Logger) *NotificationRetryJob {
	if schedule == "" {
		schedule = DefaultNotificationRetrySchedule
	}
	return &NotificationRetryJob{
		retrier:  retrier,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "notification_retry_job"),
	}
}

// Start schedules the job.
func (j *NotificationRetryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started", "schedule", j.schedule)
	return nil
}

// RunOnce retries the buffered events. It does nothing when the buffer is empty.
func (j *NotificationRetryJob) RunOnce(ctx context.Context) {
	if j.retrier.Pending() == 0 {
		return
	}

	sent, err := j.retrier.RetryPending(ctx)
	if sent > 0 {
		j.logger.InfoContext(ctx, "Re-published order events", "sent", sent)
	}
	if err != nil {
		j.logger.WarnContext(ctx, "Order events still undelivered",
			"pending", j.retrier.Pending(),
			"error", err,
		)
	}
}

// Stop stops scheduling and waits for a running retry to finish.
func (j *NotificationRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}
