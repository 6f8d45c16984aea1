package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/guard"
)

var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// ProcessPaymentCommand represents a customer paying for their order.
// It targets the payment row opened when the order was created.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   principal.Principal
	method  payment.Method

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a validated payment command.
func NewProcessPaymentCommand(
	orderID kernel.UUID,
	actor principal.Principal,
	method payment.Method,
) (ProcessPaymentCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		method.Validate(),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return ProcessPaymentCommand{
		orderID: orderID,
		actor:   actor,
		method:  method,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the order being paid.
func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the paying customer's principal.
func (c ProcessPaymentCommand) Actor() principal.Principal {
	return c.actor
}

// Method returns the chosen payment method.
func (c ProcessPaymentCommand) Method() payment.Method {
	return c.method
}
