package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand represents a driver's position report.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	actor    principal.Principal
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a validated position report command.
func NewUpdateDriverLocationCommand(
	actor principal.Principal,
	latitude, longitude float64,
) (UpdateDriverLocationCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpdateDriverLocationCommand{}, err
	}
	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		actor:    actor,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

// Actor returns the driver's principal.
func (c UpdateDriverLocationCommand) Actor() principal.Principal {
	return c.actor
}

// Location returns the reported position.
func (c UpdateDriverLocationCommand) Location() kernel.GeoPoint {
	return c.location
}
