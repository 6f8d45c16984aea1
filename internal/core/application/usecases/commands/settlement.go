package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// settleCancelledPayment reverses whatever money state a cancelled order's
// payment is in: an unpaid payment is voided, a collected one is refunded in
// full through the gateway. Every cancellation path runs through here so the
// payment row always agrees with the order's refunded payment status.
func settleCancelledPayment(
	ctx context.Context,
	paymentRepo ports.PaymentRepository,
	gateway ports.PaymentGateway,
	orderID kernel.UUID,
) error {
	pay, err := paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	switch pay.Status() {
	case payment.StatusPending:
		if err = pay.CancelUnpaid(); err != nil {
			return err
		}
	case payment.StatusCompleted, payment.StatusPartiallyRefunded:
		amount := pay.RefundableAmount()
		if err = gateway.Refund(ctx, pay.TransactionID(), amount); err != nil {
			return errs.NewUpstreamFailureError("payment gateway", err)
		}
		if err = pay.Refund(amount); err != nil {
			return err
		}
	default:
		return nil
	}

	return paymentRepo.Update(ctx, pay)
}
