package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// UpdateOrderStatusCommandHandler drives the order state machine forward.
//
// Ownership is judged per target status: restaurant statuses require the
// owner of the order's restaurant, delivery statuses require the assigned
// driver, cancellation requires the ordering customer. Delivering an order
// additionally credits the driver's share of the delivery fee, and a
// cancellation settles the order's payment, both inside the same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderPaymentDriverUoWFactory
	pricing    services.PricingEngine
	gateway    ports.PaymentGateway
	publisher  ports.NotificationPublisher
	authGuard  *auth.Guard
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderPaymentDriverUoWFactory,
	pricing services.PricingEngine,
	gateway ports.PaymentGateway,
	publisher ports.NotificationPublisher,
	authGuard *auth.Guard,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		gateway:    gateway,
		publisher:  publisher,
		authGuard:  authGuard,
		logger:     logger.With("component", "update_order_status_handler"),
	}
}

// Handle processes a status transition command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.authGuard.RequireStatusTransitionRole(cmd.Actor(), cmd.Next()); err != nil {
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

	if err = h.requireOwnership(ctx, cmd, aggregate); err != nil {
		return err
	}

	if err = aggregate.UpdateStatus(cmd.Next(), cmd.Actor().Role(), time.Now().UTC()); err != nil {
		return err
	}

	switch cmd.Next() {
	case order.StatusDelivered:
		if err = h.creditDriver(ctx, uow, aggregate); err != nil {
			return err
		}
	case order.StatusCancelled:
		if err = settleCancelledPayment(ctx, uow.PaymentRepository(), h.gateway, cmd.OrderID()); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishStatusChange(ctx, aggregate)
	return nil
}

// requireOwnership picks the ownership rule matching the actor's role.
// The role itself was already checked against the target status.
func (h *UpdateOrderStatusCommandHandler) requireOwnership(
	ctx context.Context, cmd UpdateOrderStatusCommand, aggregate *order.Order,
) error {
	switch cmd.Actor().Role() {
	case principal.RoleRestaurantOwner:
		return h.authGuard.RequireOrderRestaurantOwner(ctx, cmd.Actor(), aggregate)
	case principal.RoleDriver:
		return h.authGuard.RequireAssignedDriver(cmd.Actor(), aggregate)
	default:
		return h.authGuard.RequireOrderCustomer(cmd.Actor(), aggregate)
	}
}

// creditDriver pays out the driver's share of the delivery fee on delivery.
func (h *UpdateOrderStatusCommandHandler) creditDriver(
	ctx context.Context, uow OrderPaymentDriverUoW, aggregate *order.Order,
) error {
	driverRepo := uow.DriverRepository()
	assignee, err := driverRepo.Get(ctx, *aggregate.DriverID())
	if err != nil {
		return err
	}

	earnings := h.pricing.DriverEarnings(aggregate.DeliveryFee())
	if err = assignee.AddEarnings(earnings); err != nil {
		return err
	}

	return driverRepo.Update(ctx, assignee)
}

func (h *UpdateOrderStatusCommandHandler) publishStatusChange(ctx context.Context, o *order.Order) {
	event := ports.StatusChangeEvent{
		OrderID:   o.ID().String(),
		NewStatus: o.Status().String(),
		Message:   "order is now " + o.Status().String(),
	}
	if err := h.publisher.PublishStatusChange(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "status change publish failed",
			"order_id", event.OrderID, "status", event.NewStatus, "error", err)
	}
}
