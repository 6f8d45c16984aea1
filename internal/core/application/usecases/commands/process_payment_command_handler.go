package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ProcessPaymentCommandHandler charges the payment opened at order creation
// through the gateway and records the outcome.
//
// A declined charge is recorded as a Failed payment and surfaces to the
// caller as a conflict; the customer can retry with another method. Only
// the ordering customer can pay, and a payment that is already processing
// or completed cannot be charged again.
type ProcessPaymentCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	gateway    ports.PaymentGateway
	authGuard  *auth.Guard
}

// NewProcessPaymentCommandHandler creates a handler for payment processing.
func NewProcessPaymentCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
	authGuard *auth.Guard,
) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		authGuard:  authGuard,
	}
}

// Handle processes the payment command and returns the charged payment's ID.
func (h *ProcessPaymentCommandHandler) Handle(
	ctx context.Context, cmd ProcessPaymentCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = h.authGuard.RequireOrderCustomer(cmd.Actor(), aggregate); err != nil {
		return kernel.UUID{}, err
	}
	if aggregate.Status() == order.StatusCancelled {
		return kernel.UUID{}, errs.NewConflictError("cancelled order cannot be paid")
	}

	pay, err := uow.PaymentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = h.requireChargeable(pay); err != nil {
		return kernel.UUID{}, err
	}
	if err = pay.MarkProcessing(cmd.Method()); err != nil {
		return kernel.UUID{}, err
	}

	result, chargeErr := h.gateway.Charge(ctx, pay.Amount(), cmd.Method())

	outcomeErr := h.recordOutcome(pay, aggregate, result, chargeErr)

	if err = uow.PaymentRepository().Update(ctx, pay); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return pay.ID(), outcomeErr
}

// requireChargeable rejects a charge while the payment is processing, already
// completed, refunded, or cancelled. Pending and Failed payments can be
// charged.
func (h *ProcessPaymentCommandHandler) requireChargeable(pay *payment.Payment) error {
	switch pay.Status() {
	case payment.StatusPending, payment.StatusFailed:
		return nil
	default:
		return errs.NewConflictError("payment is in status " + pay.Status().String())
	}
}

// recordOutcome applies the gateway result to the aggregates. The returned
// error is what the caller sees after the outcome is committed.
func (h *ProcessPaymentCommandHandler) recordOutcome(
	pay *payment.Payment,
	aggregate *order.Order,
	result ports.ChargeResult,
	chargeErr error,
) error {
	if chargeErr != nil {
		_ = pay.MarkFailed("gateway unreachable")
		_ = aggregate.SyncPaymentStatus(order.PaymentStatusFailed)
		return errs.NewUpstreamFailureError("payment gateway", chargeErr)
	}
	if !result.Approved {
		_ = pay.MarkFailed(result.DeclineReason)
		_ = aggregate.SyncPaymentStatus(order.PaymentStatusFailed)
		return errs.NewConflictError("payment declined: " + result.DeclineReason)
	}

	if err := pay.MarkCompleted(result.TransactionID, time.Now().UTC()); err != nil {
		return err
	}
	return aggregate.SyncPaymentStatus(order.PaymentStatusCompleted)
}
