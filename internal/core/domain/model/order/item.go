package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is a line item on an order. The unit price is a snapshot taken from the
// catalog at order time and is immutable thereafter; later catalog price
// changes never affect an existing order.
type Item struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	unitPrice  kernel.Money
}

// NewItem creates a validated line item with a frozen unit price.
// Quantity must be positive and the unit price non-negative.
func NewItem(menuItemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unit price",
			errors.New("must not be negative"))
	}

	return Item{
		menuItemID: menuItemID,
		name:       name,
		quantity:   quantity,
		unitPrice:  unitPrice,
	}, nil
}

// MenuItemID returns the catalog reference of the line item.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the menu item name captured at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns quantity × unit-price-snapshot.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}
