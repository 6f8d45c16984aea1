package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order on the customer's behalf.
// Cancellation is only legal while the order is still Pending; once the
// restaurant confirmed, the request is rejected as a conflict. If a payment
// was already collected for the order it is refunded in full; an unpaid
// payment is voided.
type CancelOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.NotificationPublisher
	authGuard  *auth.Guard
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.NotificationPublisher,
	authGuard *auth.Guard,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
		authGuard:  authGuard,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = h.authGuard.RequireOrderCustomer(cmd.Actor(), aggregate); err != nil {
		return err
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = settleCancelledPayment(ctx, uow.PaymentRepository(), h.gateway, cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.StatusChangeEvent{
		OrderID:   aggregate.ID().String(),
		NewStatus: aggregate.Status().String(),
		Message:   "order cancelled by customer",
	}
	if err = h.publisher.PublishStatusChange(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "status change publish failed",
			"order_id", event.OrderID, "error", err)
	}
	return nil
}
