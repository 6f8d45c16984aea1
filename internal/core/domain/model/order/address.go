package order

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Address is the delivery-address snapshot copied onto an order at creation.
// The coordinate pair is optional; orders without coordinates fall back to the
// restaurant's static delivery fee instead of dynamic pricing.
type Address struct {
	street  string
	city    string
	state   string
	zipCode string
	point   *kernel.GeoPoint
}

// NewAddress creates a validated address snapshot. Street is required; the
// geo point, when present, must be a constructed kernel.GeoPoint.
func NewAddress(street, city, state, zipCode string, point *kernel.GeoPoint) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return Address{}, err
		}
	}

	return Address{
		street:  street,
		city:    city,
		state:   state,
		zipCode: zipCode,
		point:   point,
	}, nil
}

// Street returns the street line of the address.
func (a Address) Street() string { return a.street }

// City returns the city of the address.
func (a Address) City() string { return a.city }

// State returns the state or region of the address.
func (a Address) State() string { return a.state }

// ZipCode returns the postal code of the address.
func (a Address) ZipCode() string { return a.zipCode }

// Point returns the geocoded coordinates, or nil when the address was never
// geocoded.
func (a Address) Point() *kernel.GeoPoint { return a.point }
