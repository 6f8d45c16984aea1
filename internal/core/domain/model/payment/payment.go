package payment

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment is the aggregate tracking money collected for a single order.
// It moves Pending -> Processing -> Completed/Failed through the gateway, and
// Completed payments can be refunded in one or more slices until the full
// amount is returned.
type Payment struct {
	id      kernel.UUID
	orderID kernel.UUID

	amount         kernel.Money
	refundedAmount kernel.Money
	method         Method
	status         Status

	transactionID string
	failureReason string

	createdAt time.Time
	paidAt    *time.Time

	isConstructed bool
}

// NewPayment creates a Pending payment for the given order, opened together
// with the order itself. The amount must be positive; it is the order's total,
// not just the subtotal. The method stays Unknown until the customer charges
// the payment.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	now time.Time,
) (*Payment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidError("payment amount")
	}

	return &Payment{
		id:             id,
		orderID:        orderID,
		amount:         amount.Round2(),
		refundedAmount: kernel.ZeroMoney(),
		method:         MethodUnknown,
		status:         StatusPending,
		createdAt:      now,
		isConstructed:  true,
	}, nil
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount, refundedAmount kernel.Money,
	method Method,
	status Status,
	transactionID, failureReason string,
	createdAt time.Time,
	paidAt *time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:             id,
		orderID:        orderID,
		amount:         amount,
		refundedAmount: refundedAmount,
		method:         method,
		status:         status,
		transactionID:  transactionID,
		failureReason:  failureReason,
		createdAt:      createdAt,
		paidAt:         paidAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the payment was created through NewPayment or RestorePayment.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// OrderID returns the paid order's identifier.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// Amount returns the charged amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// RefundedAmount returns the total refunded so far.
func (p *Payment) RefundedAmount() kernel.Money { return p.refundedAmount }

// Method returns the payment method.
func (p *Payment) Method() Method { return p.method }

// Status returns the current payment status.
func (p *Payment) Status() Status { return p.status }

// TransactionID returns the gateway transaction reference, empty until the
// charge completes.
func (p *Payment) TransactionID() string { return p.transactionID }

// FailureReason returns the gateway's failure detail, empty unless Failed.
func (p *Payment) FailureReason() string { return p.failureReason }

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// PaidAt returns when the charge completed, or nil before that.
func (p *Payment) PaidAt() *time.Time { return p.paidAt }

// IsEqual compares two payments by identity.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// MarkProcessing records the chosen method and moves the payment into
// Processing while the gateway call is in flight. A Failed payment can be
// retried with another method.
func (p *Payment) MarkProcessing(method Method) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := method.Validate(); err != nil {
		return err
	}
	if p.status != StatusPending && p.status != StatusFailed {
		return errs.NewInvalidStateTransitionError("payment", p.status.String(), StatusProcessing.String())
	}
	p.method = method
	p.status = StatusProcessing
	p.failureReason = ""
	return nil
}

// MarkCompleted records a successful charge, stamping the gateway transaction
// reference and the completion time.
func (p *Payment) MarkCompleted(transactionID string, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transaction id")
	}
	if p.status != StatusPending && p.status != StatusProcessing {
		return errs.NewInvalidStateTransitionError("payment", p.status.String(), StatusCompleted.String())
	}

	p.status = StatusCompleted
	p.transactionID = transactionID
	t := now
	p.paidAt = &t
	return nil
}

// MarkFailed records a declined or errored charge with the gateway's reason.
func (p *Payment) MarkFailed(reason string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status != StatusPending && p.status != StatusProcessing {
		return errs.NewInvalidStateTransitionError("payment", p.status.String(), StatusFailed.String())
	}

	p.status = StatusFailed
	p.failureReason = reason
	return nil
}

// CancelUnpaid voids a payment that never reached the gateway, used when the
// order is cancelled while payment is still Pending.
func (p *Payment) CancelUnpaid() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status != StatusPending {
		return errs.NewInvalidStateTransitionError("payment", p.status.String(), StatusCancelled.String())
	}
	p.status = StatusCancelled
	return nil
}

// CanRefund reports whether any amount is still refundable.
func (p *Payment) CanRefund() bool {
	return p.status == StatusCompleted || p.status == StatusPartiallyRefunded
}

// RefundableAmount returns how much can still be refunded.
func (p *Payment) RefundableAmount() kernel.Money {
	if !p.CanRefund() {
		return kernel.ZeroMoney()
	}
	return p.amount.Sub(p.refundedAmount)
}

// Refund returns the given slice of the charge. The amount must be positive
// and must not exceed what is still refundable. Refunding the remainder moves
// the payment to Refunded, a smaller slice to PartiallyRefunded.
func (p *Payment) Refund(amount kernel.Money) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.CanRefund() {
		return errs.NewInvalidStateTransitionError("payment", p.status.String(), StatusRefunded.String())
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("refund amount")
	}
	if amount.Cmp(p.RefundableAmount()) > 0 {
		return errs.NewValueIsOutOfRangeError("refund amount",
			amount.String(), "0.01", p.RefundableAmount().String())
	}

	p.refundedAmount = p.refundedAmount.Add(amount)
	if p.refundedAmount.IsEqual(p.amount) {
		p.status = StatusRefunded
	} else {
		p.status = StatusPartiallyRefunded
	}
	return nil
}
