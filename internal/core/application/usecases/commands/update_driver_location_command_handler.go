package commands

import (
	"context"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/principal"
)

// UpdateDriverLocationCommandHandler records a driver's position report.
type UpdateDriverLocationCommandHandler struct {
	uowFactory DriverUoWFactory
	authGuard  *auth.Guard
}

// NewUpdateDriverLocationCommandHandler creates a handler for position reports.
func NewUpdateDriverLocationCommandHandler(
	uowFactory DriverUoWFactory,
	authGuard *auth.Guard,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		authGuard:  authGuard,
	}
}

// Handle processes the position report.
func (h *UpdateDriverLocationCommandHandler) Handle(
	ctx context.Context, cmd UpdateDriverLocationCommand,
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

	if err = aggregate.UpdateLocation(cmd.Location()); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
