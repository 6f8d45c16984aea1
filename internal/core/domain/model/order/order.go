package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TaxRate is the fixed tax percentage applied to the subtotal at creation.
var TaxRate = decimal.RequireFromString("0.085")

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// PricingDetails carries the pricing engine's output frozen onto the order at
// creation time. DistanceKm is nil when either endpoint lacked coordinates and
// the restaurant's static fee was used instead.
type PricingDetails struct {
	DeliveryFee         kernel.Money
	DistanceKm          *float64
	WeatherCondition    string
	BadWeatherSurcharge bool
	PeakHourSurcharge   bool
	EtaMinutes          int
}

// Order is the central aggregate of the marketplace. It owns the order state
// machine, the monetary snapshot taken at creation, and the driver assignment.
//
// Invariants:
//   - total = subtotal + deliveryFee + tax, always, after creation
//   - line items and monetary fields are immutable after creation
//   - status transitions follow the adjacency map in status.go
//   - the driver reference is set at most once per lifecycle
//   - Delivered and Cancelled are terminal
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	driverID     *kernel.UUID

	deliveryAddress Address
	items           []Item

	subtotal    kernel.Money
	deliveryFee kernel.Money
	tax         kernel.Money
	total       kernel.Money

	status        Status
	paymentStatus PaymentStatus

	distanceKm          *float64
	weatherCondition    string
	badWeatherSurcharge bool
	peakHourSurcharge   bool
	etaMinutes          int

	createdAt   time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewOrder creates an order in Pending status with a Pending payment status.
// This is the only place prices are frozen: the subtotal is computed from the
// item price snapshots, the delivery fee comes from the pricing details, and
// tax is TaxRate of the subtotal rounded half-up to 2 decimals.
//
// At least one line item is required; every item must already be validated
// through NewItem.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	deliveryAddress Address,
	items []Item,
	pricing PricingDetails,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}
	if pricing.DeliveryFee.IsNegative() {
		return nil, errs.NewValueIsInvalidError("delivery fee")
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	subtotal = subtotal.Round2()

	fee := pricing.DeliveryFee.Round2()
	tax := subtotal.Mul(TaxRate).Round2()
	total := subtotal.Add(fee).Add(tax)

	return &Order{
		id:                  id,
		customerID:          customerID,
		restaurantID:        restaurantID,
		deliveryAddress:     deliveryAddress,
		items:               append([]Item(nil), items...),
		subtotal:            subtotal,
		deliveryFee:         fee,
		tax:                 tax,
		total:               total,
		status:              StatusPending,
		paymentStatus:       PaymentStatusPending,
		distanceKm:          pricing.DistanceKm,
		weatherCondition:    pricing.WeatherCondition,
		badWeatherSurcharge: pricing.BadWeatherSurcharge,
		peakHourSurcharge:   pricing.PeakHourSurcharge,
		etaMinutes:          pricing.EtaMinutes,
		createdAt:           now,
		isConstructed:       true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-freezing
// prices. Monetary fields are taken as stored.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	driverID *kernel.UUID,
	deliveryAddress Address,
	items []Item,
	subtotal, deliveryFee, tax, total kernel.Money,
	status Status,
	paymentStatus PaymentStatus,
	pricing PricingDetails,
	createdAt time.Time,
	pickedUpAt, deliveredAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                  id,
		customerID:          customerID,
		restaurantID:        restaurantID,
		driverID:            driverID,
		deliveryAddress:     deliveryAddress,
		items:               append([]Item(nil), items...),
		subtotal:            subtotal,
		deliveryFee:         deliveryFee,
		tax:                 tax,
		total:               total,
		status:              status,
		paymentStatus:       paymentStatus,
		distanceKm:          pricing.DistanceKm,
		weatherCondition:    pricing.WeatherCondition,
		badWeatherSurcharge: pricing.BadWeatherSurcharge,
		peakHourSurcharge:   pricing.PeakHourSurcharge,
		etaMinutes:          pricing.EtaMinutes,
		createdAt:           createdAt,
		pickedUpAt:          pickedUpAt,
		deliveredAt:         deliveredAt,
		isConstructed:       true,
	}, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// RestaurantID returns the restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// DriverID returns the assigned driver, or nil before assignment.
func (o *Order) DriverID() *kernel.UUID { return o.driverID }

// DeliveryAddress returns the address snapshot taken at creation.
func (o *Order) DeliveryAddress() Address { return o.deliveryAddress }

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }

// Subtotal returns the sum of line-item subtotals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// DeliveryFee returns the fee frozen at creation.
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

// Tax returns the tax frozen at creation.
func (o *Order) Tax() kernel.Money { return o.tax }

// Total returns subtotal + deliveryFee + tax.
func (o *Order) Total() kernel.Money { return o.total }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the order-side payment status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// DistanceKm returns the restaurant-to-address distance captured at creation,
// or nil when dynamic pricing was not applied.
func (o *Order) DistanceKm() *float64 { return o.distanceKm }

// WeatherCondition returns the human-readable weather label captured at creation.
func (o *Order) WeatherCondition() string { return o.weatherCondition }

// BadWeatherSurcharge reports whether the weather multiplier was applied.
func (o *Order) BadWeatherSurcharge() bool { return o.badWeatherSurcharge }

// PeakHourSurcharge reports whether the peak multiplier was applied.
func (o *Order) PeakHourSurcharge() bool { return o.peakHourSurcharge }

// EtaMinutes returns the delivery time estimate captured at creation.
func (o *Order) EtaMinutes() int { return o.etaMinutes }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// PickedUpAt returns the pickup timestamp, or nil before pickup.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// DeliveredAt returns the delivery timestamp, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// UpdateStatus moves the order to next on behalf of the given role.
//
// Rules, checked in order:
//   - terminal states reject every transition with InvalidStateTransition
//   - next must be a legal successor in the adjacency map
//   - next must be settable by exactly the given role, otherwise Forbidden
//   - Cancelled requires the current status to be Pending
//
// Side effects on success: PickedUp stamps the pickup time, Delivered stamps
// the delivery time and forces payment status to Completed, Cancelled forces
// payment status to Refunded.
func (o *Order) UpdateStatus(next Status, byRole principal.Role, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}

	requiredRole, ok := RoleAllowedToSet(next)
	if !ok || byRole != requiredRole {
		return errs.NewForbiddenError("role " + string(byRole) + " cannot set status " + next.String())
	}

	if next == StatusCancelled && o.status != StatusPending {
		return errs.NewInvalidStateTransitionError("order", o.status.String(), next.String())
	}

	o.status = next

	switch next {
	case StatusPickedUp:
		t := now
		o.pickedUpAt = &t
	case StatusDelivered:
		t := now
		o.deliveredAt = &t
		o.paymentStatus = PaymentStatusCompleted
	case StatusCancelled:
		o.paymentStatus = PaymentStatusRefunded
	}

	return nil
}

// Cancel cancels the order on behalf of its customer. Legal only from Pending;
// any later state surfaces as a Conflict that still matches
// ErrInvalidStateTransition through its cause.
func (o *Order) Cancel() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != StatusPending {
		cause := errs.NewInvalidStateTransitionError("order", o.status.String(), StatusCancelled.String())
		return errs.NewConflictErrorWithCause("order can no longer be cancelled", cause)
	}

	o.status = StatusCancelled
	o.paymentStatus = PaymentStatusRefunded
	return nil
}

// AssignDriver sets the driver reference exactly once. The order must be in
// ReadyForPickup with no driver assigned; otherwise the caller lost the
// assignment race and receives Conflict. Assignment does not change the order
// status; pickup is a separate, explicit driver action.
//
// This in-memory check is backed by a conditional update at the persistence
// layer, which is what actually closes the race between concurrent accepts.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status != StatusReadyForPickup {
		return errs.NewConflictError("order is not ready for pickup")
	}
	if o.driverID != nil {
		return errs.NewConflictError("order is already assigned to a driver")
	}

	o.driverID = &driverID
	return nil
}

// SyncPaymentStatus updates the order-side payment status after a payment
// operation (charge completion or failure) outside the status machine.
func (o *Order) SyncPaymentStatus(ps PaymentStatus) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := ps.Validate(); err != nil {
		return err
	}
	o.paymentStatus = ps
	return nil
}
