package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// RestaurantSnapshot is the read-side view of a restaurant needed to place and
// authorize orders: who owns it, where it is, and its static fee fallback.
type RestaurantSnapshot struct {
	ID                kernel.UUID
	OwnerID           kernel.UUID
	Name              string
	Location          *kernel.GeoPoint
	StaticDeliveryFee kernel.Money
	IsOpen            bool
}

// MenuItemSnapshot is the read-side view of a menu item at order time. The
// price here is what gets frozen onto the order line.
type MenuItemSnapshot struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        kernel.Money
	IsAvailable  bool
}

// CatalogRepository is the read-only gateway to restaurant and menu data.
// Order placement snapshots prices through it; the authorization layer
// resolves restaurant ownership through it. It runs outside the unit of work
// since it never mutates anything.
type CatalogRepository interface {
	// GetRestaurant retrieves a restaurant snapshot by identifier.
	// Returns ObjectNotFound when no such restaurant exists.
	GetRestaurant(ctx context.Context, id kernel.UUID) (RestaurantSnapshot, error)

	// GetMenuItems retrieves snapshots for the given menu item identifiers.
	// Returns ObjectNotFound when any requested item does not exist.
	GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]MenuItemSnapshot, error)
}
