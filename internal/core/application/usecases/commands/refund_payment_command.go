package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRefundPaymentCommandIsNotConstructed = errors.New(
	"RefundPaymentCommand must be created via NewRefundPaymentCommand constructor",
)

// RefundPaymentCommand represents a request to return part or all of an
// order's payment.
type RefundPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   principal.Principal
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewRefundPaymentCommand creates a validated refund command.
// The amount must be positive; the refundable ceiling is enforced by the
// payment aggregate against its live state.
func NewRefundPaymentCommand(
	orderID kernel.UUID,
	actor principal.Principal,
	amount kernel.Money,
) (RefundPaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return RefundPaymentCommand{}, err
	}
	if !amount.IsPositive() {
		return RefundPaymentCommand{}, errs.NewValueIsInvalidError("refund amount")
	}

	return RefundPaymentCommand{
		orderID: orderID,
		actor:   actor,
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRefundPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment is refunded.
func (c RefundPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting principal.
func (c RefundPaymentCommand) Actor() principal.Principal {
	return c.actor
}

// Amount returns the refund amount.
func (c RefundPaymentCommand) Amount() kernel.Money {
	return c.amount
}
