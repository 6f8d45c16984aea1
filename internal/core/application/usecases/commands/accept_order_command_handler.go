package commands

import (
	"context"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"
)

// AcceptOrderCommandHandler lets a driver claim an open order.
//
// The claim itself is a single conditional update in the order repository:
// it only lands while the order is still open for pickup with no driver set.
// When several drivers race for the same order, exactly one wins; everyone
// else gets Conflict. Claiming never advances the order status, the driver
// still has to report the pickup explicitly.
type AcceptOrderCommandHandler struct {
	uowFactory OrderDriverUoWFactory
	authGuard  *auth.Guard
}

// NewAcceptOrderCommandHandler creates a handler for order claims.
func NewAcceptOrderCommandHandler(
	uowFactory OrderDriverUoWFactory,
	authGuard *auth.Guard,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		authGuard:  authGuard,
	}
}

// Handle processes the order claim command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	claimant, err := uow.DriverRepository().Get(ctx, cmd.Actor().SubjectID())
	if err != nil {
		return err
	}
	if !claimant.IsAvailable() {
		return errs.NewConflictError("driver is offline")
	}

	if err = uow.OrderRepository().AssignDriver(ctx, cmd.OrderID(), claimant.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
