package commands

import (
	"context"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// RefundPaymentCommandHandler returns money against a completed payment.
// Only the ordering customer can request one. The payment aggregate enforces
// the refundable ceiling; the gateway is called before the aggregate is
// mutated so a gateway failure leaves no partial state behind.
type RefundPaymentCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	gateway    ports.PaymentGateway
	authGuard  *auth.Guard
}

// NewRefundPaymentCommandHandler creates a handler for refunds.
func NewRefundPaymentCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
	authGuard *auth.Guard,
) RefundPaymentCommandHandler {
	return RefundPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		authGuard:  authGuard,
	}
}

// Handle processes the refund command.
func (h *RefundPaymentCommandHandler) Handle(ctx context.Context, cmd RefundPaymentCommand) error {
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

	pay, err := uow.PaymentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !pay.CanRefund() {
		return errs.NewConflictError("payment in status " + pay.Status().String() + " cannot be refunded")
	}
	if cmd.Amount().Cmp(pay.RefundableAmount()) > 0 {
		return errs.NewValueIsOutOfRangeError("refund amount",
			cmd.Amount().String(), "0.01", pay.RefundableAmount().String())
	}

	if err = h.gateway.Refund(ctx, pay.TransactionID(), cmd.Amount()); err != nil {
		return errs.NewUpstreamFailureError("payment gateway", err)
	}

	if err = pay.Refund(cmd.Amount()); err != nil {
		return err
	}
	if pay.Status() == payment.StatusRefunded {
		if err = aggregate.SyncPaymentStatus(order.PaymentStatusRefunded); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.PaymentRepository().Update(ctx, pay); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
