package commands

import (
	"context"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
)

// SetDriverAvailabilityCommandHandler flips a driver between online and
// offline. Only the driver themselves can change their availability.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
	authGuard  *auth.Guard
}

// NewSetDriverAvailabilityCommandHandler creates a handler for availability changes.
func NewSetDriverAvailabilityCommandHandler(
	uowFactory DriverUoWFactory,
	authGuard *auth.Guard,
) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
		authGuard:  authGuard,
	}
}

// Handle processes the availability command.
func (h *SetDriverAvailabilityCommandHandler) Handle(
	ctx context.Context, cmd SetDriverAvailabilityCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.authGuard.RequireRole(cmd.Actor(), principal.RoleDriver); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.DriverRepository().Get(ctx, cmd.Actor().SubjectID())
	if err != nil {
		return err
	}

	if cmd.Available() {
		location, err := kernel.NewGeoPoint(*cmd.Latitude(), *cmd.Longitude())
		if err != nil {
			return err
		}
		if err = aggregate.GoOnline(location); err != nil {
			return err
		}
	} else {
		if err = aggregate.GoOffline(); err != nil {
			return err
		}
	}

	if err = uow.DriverRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
