// Package jobs contains the scheduled background work: the periodic sweep
// that expires orders no restaurant ever confirmed.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingOrderExpiryJob periodically cancels orders stuck in pending status
// longer than the configured time to live.
type PendingOrderExpiryJob struct {
	handler commands.ExpirePendingOrdersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPendingOrderExpiryJob creates the expiry job. The sweep runs once a
// minute; ttl controls how long a pending order may wait before it expires.
func NewPendingOrderExpiryJob(
	handler commands.ExpirePendingOrdersCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *PendingOrderExpiryJob {
	return &PendingOrderExpiryJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(),
		logger:  logger.With("component", "pending_order_expiry_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *PendingOrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "pending order expiry job started",
		"ttl", j.ttl.String())
	return nil
}

// Stop stops the job.
func (j *PendingOrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "pending order expiry job stopped")
}

func (j *PendingOrderExpiryJob) runOnce() {
	ctx := context.Background()

	cmd, err := commands.NewExpirePendingOrdersCommand(j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "expiry command rejected", "error", err)
		return
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "pending order expiry sweep failed", "error", err)
	}
}
