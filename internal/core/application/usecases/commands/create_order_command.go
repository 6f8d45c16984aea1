package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested line: a catalog reference and a quantity.
// Prices are never taken from the client; they are snapshotted from the
// catalog inside the handler.
type OrderItemInput struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// DeliveryAddressInput is the requested drop-off location. Coordinates are
// optional; without them the order is priced with the restaurant's static fee.
type DeliveryAddressInput struct {
	Street    string
	City      string
	State     string
	ZipCode   string
	Latitude  *float64
	Longitude *float64
}

// CreateOrderCommand represents a customer's request to place an order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        principal.Principal
	restaurantID kernel.UUID
	items        []OrderItemInput
	address      DeliveryAddressInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order placement command.
// The order ID comes from the caller so that retries stay idempotent.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor principal.Principal,
	restaurantID kernel.UUID,
	items []OrderItemInput,
	address DeliveryAddressInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, restaurantID),
		cmd.setActor(actor),
		cmd.setItems(items),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the client-chosen identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the principal placing the order.
func (c CreateOrderCommand) Actor() principal.Principal {
	return c.actor
}

// RestaurantID returns the restaurant the order is placed with.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns the requested lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return append([]OrderItemInput(nil), c.items...)
}

// Address returns the requested drop-off location.
func (c CreateOrderCommand) Address() DeliveryAddressInput {
	return c.address
}

func (c *CreateOrderCommand) setIDs(orderID, restaurantID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setActor(actor principal.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidError("item quantity")
		}
	}

	c.items = append([]OrderItemInput(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setAddress(address DeliveryAddressInput) error {
	if address.Street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	if (address.Latitude == nil) != (address.Longitude == nil) {
		return errs.NewValueIsInvalidError("address coordinates")
	}

	c.address = address
	return nil
}
