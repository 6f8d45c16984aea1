package driver

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrDriverIsNotConstructed is returned when a Driver instance was not created
// through NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")

// Driver is the aggregate for a delivery driver: availability, last reported
// location, and accumulated earnings. Availability gates which drivers see the
// open-orders feed; it does not by itself reserve a driver for an order.
type Driver struct {
	id   kernel.UUID
	name string

	location  *kernel.GeoPoint
	available bool

	totalEarnings kernel.Money

	createdAt time.Time

	isConstructed bool
}

// NewDriver registers a driver, offline and with no earnings.
func NewDriver(id kernel.UUID, name string, now time.Time) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("driver name")
	}

	return &Driver{
		id:            id,
		name:          name,
		totalEarnings: kernel.ZeroMoney(),
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	location *kernel.GeoPoint,
	available bool,
	totalEarnings kernel.Money,
	createdAt time.Time,
) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	return &Driver{
		id:            id,
		name:          name,
		location:      location,
		available:     available,
		totalEarnings: totalEarnings,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the driver was created through NewDriver or RestoreDriver.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID { return d.id }

// Name returns the driver's display name.
func (d *Driver) Name() string { return d.name }

// Location returns the last reported location, or nil if never reported.
func (d *Driver) Location() *kernel.GeoPoint { return d.location }

// IsAvailable reports whether the driver is online and accepting orders.
func (d *Driver) IsAvailable() bool { return d.available }

// TotalEarnings returns the accumulated delivery earnings.
func (d *Driver) TotalEarnings() kernel.Money { return d.totalEarnings }

// CreatedAt returns the registration timestamp.
func (d *Driver) CreatedAt() time.Time { return d.createdAt }

// IsEqual compares two drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// GoOnline marks the driver available. A current location is required so that
// the open-orders feed never shows orders to a driver nobody can locate.
func (d *Driver) GoOnline(location kernel.GeoPoint) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	d.location = &location
	d.available = true
	return nil
}

// GoOffline marks the driver unavailable. The last known location is kept.
func (d *Driver) GoOffline() error {
	if err := d.Validate(); err != nil {
		return err
	}
	d.available = false
	return nil
}

// UpdateLocation records a new position report.
func (d *Driver) UpdateLocation(location kernel.GeoPoint) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = &location
	return nil
}

// AddEarnings credits a completed delivery's payout.
func (d *Driver) AddEarnings(amount kernel.Money) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("earnings amount")
	}
	d.totalEarnings = d.totalEarnings.Add(amount)
	return nil
}
