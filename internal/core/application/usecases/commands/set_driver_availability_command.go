package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand represents a driver going online or offline.
// Going online requires a current position; going offline does not.
type SetDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	actor     principal.Principal
	available bool
	latitude  *float64
	longitude *float64

	guard guard.ConstructorGuard
}

// NewSetDriverAvailabilityCommand creates a validated availability command.
func NewSetDriverAvailabilityCommand(
	actor principal.Principal,
	available bool,
	latitude, longitude *float64,
) (SetDriverAvailabilityCommand, error) {
	if err := actor.Validate(); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}
	if available && (latitude == nil || longitude == nil) {
		return SetDriverAvailabilityCommand{}, errs.NewValueIsRequiredError("location")
	}

	return SetDriverAvailabilityCommand{
		actor:     actor,
		available: available,
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

// Actor returns the driver's principal.
func (c SetDriverAvailabilityCommand) Actor() principal.Principal {
	return c.actor
}

// Available reports whether the driver is going online.
func (c SetDriverAvailabilityCommand) Available() bool {
	return c.available
}

// Latitude returns the reported latitude, nil when going offline.
func (c SetDriverAvailabilityCommand) Latitude() *float64 {
	return c.latitude
}

// Longitude returns the reported longitude, nil when going offline.
func (c SetDriverAvailabilityCommand) Longitude() *float64 {
	return c.longitude
}
