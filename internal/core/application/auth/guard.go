// Package auth enforces role and ownership checks for use case handlers.
// Checks always run in the same sequence: the principal must be present,
// the referenced objects must exist, and only then is entitlement judged.
// That ordering keeps the error taxonomy stable for API clients:
// Unauthenticated before ObjectNotFound before Forbidden.
package auth

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// Guard resolves ownership freshly on every check. Nothing is cached between
// calls: a revoked role or a reassigned restaurant takes effect on the next
// request.
type Guard struct {
	catalog ports.CatalogRepository
}

// NewGuard creates a guard backed by the catalog for ownership lookups.
func NewGuard(catalog ports.CatalogRepository) (*Guard, error) {
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	return &Guard{catalog: catalog}, nil
}

// RequireRole checks the principal is present and carries one of the given roles.
func (g *Guard) RequireRole(p principal.Principal, roles ...principal.Role) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, role := range roles {
		if p.HasRole(role) {
			return nil
		}
	}
	return errs.NewForbiddenError("role " + string(p.Role()) + " is not entitled to this operation")
}

// RequireOrderCustomer checks the principal is the customer who placed the order.
func (g *Guard) RequireOrderCustomer(p principal.Principal, o *order.Order) error {
	if err := g.RequireRole(p, principal.RoleCustomer); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if !p.SubjectID().IsEqual(o.CustomerID()) {
		return errs.NewForbiddenError("order belongs to a different customer")
	}
	return nil
}

// RequireOrderRestaurantOwner checks the principal owns the restaurant the
// order was placed with. Ownership is resolved against the catalog on every
// call.
func (g *Guard) RequireOrderRestaurantOwner(ctx context.Context, p principal.Principal, o *order.Order) error {
	if err := g.RequireRole(p, principal.RoleRestaurantOwner); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	return g.RequireRestaurantOwner(ctx, p, o.RestaurantID())
}

// RequireRestaurantOwner checks the principal owns the restaurant with the
// given identifier. Returns ObjectNotFound when the restaurant does not exist.
func (g *Guard) RequireRestaurantOwner(ctx context.Context, p principal.Principal, restaurantID kernel.UUID) error {
	if err := g.RequireRole(p, principal.RoleRestaurantOwner); err != nil {
		return err
	}

	restaurant, err := g.catalog.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if !p.SubjectID().IsEqual(restaurant.OwnerID) {
		return errs.NewForbiddenError("restaurant belongs to a different owner")
	}
	return nil
}

// RequireAssignedDriver checks the principal is the driver assigned to the
// order. An unassigned order is Forbidden for every driver.
func (g *Guard) RequireAssignedDriver(p principal.Principal, o *order.Order) error {
	if err := g.RequireRole(p, principal.RoleDriver); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if o.DriverID() == nil || !p.SubjectID().IsEqual(*o.DriverID()) {
		return errs.NewForbiddenError("order is assigned to a different driver")
	}
	return nil
}

// RequireStatusTransitionRole checks the principal holds the single role
// entitled to move an order into the given status, without touching ownership.
// Ownership is checked separately by the order-scoped methods above.
func (g *Guard) RequireStatusTransitionRole(p principal.Principal, next order.Status) error {
	if err := p.Validate(); err != nil {
		return err
	}
	role, ok := order.RoleAllowedToSet(next)
	if !ok || !p.HasRole(role) {
		return errs.NewForbiddenError("role " + string(p.Role()) + " cannot set status " + next.String())
	}
	return nil
}
