package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

// ExpirePendingOrdersCommandHandler cancels orders no restaurant confirmed in
// time. It runs from the background sweep, not from a user request, so it
// bypasses role checks and cancels through the aggregate directly; the orders
// are all still Pending, which is the one state the cancel rule allows. Each
// cancelled order's payment is settled in the same transaction, so money
// collected on a stale order is returned.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.NotificationPublisher
	logger     *slog.Logger
}

// NewExpirePendingOrdersCommandHandler creates a handler for the expiry sweep.
func NewExpirePendingOrdersCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger.With("component", "expire_pending_orders_handler"),
	}
}

// Handle cancels every order pending longer than the command's TTL.
// Returns the error of the sweep itself; per-order publish failures are only
// logged.
func (h *ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-cmd.TTL())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetAllPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, aggregate := range stale {
		if err = aggregate.Cancel(); err != nil {
			return err
		}
		if err = settleCancelledPayment(ctx, uow.PaymentRepository(), h.gateway, aggregate.ID()); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range stale {
		event := ports.StatusChangeEvent{
			OrderID:   aggregate.ID().String(),
			NewStatus: aggregate.Status().String(),
			Message:   "order expired before confirmation",
		}
		if err = h.publisher.PublishStatusChange(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "status change publish failed",
				"order_id", event.OrderID, "error", err)
		}
	}

	if len(stale) > 0 {
		h.logger.InfoContext(ctx, "expired stale pending orders", "count", len(stale))
	}
	return nil
}
