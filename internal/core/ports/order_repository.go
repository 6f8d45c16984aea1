// Package ports defines the contracts between the application core and
// infrastructure adapters: repositories, the unit of work, and outbound
// collaborators such as the payment gateway and the weather source.
package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOpenForPickup retrieves orders in ReadyForPickup status with no
	// driver assigned yet. This backs the open-orders feed shown to drivers.
	GetAllOpenForPickup(ctx context.Context) ([]*order.Order, error)

	// GetAllPendingCreatedBefore retrieves orders still in Pending status whose
	// creation time is before the cutoff. Used by the expiry job to cancel
	// orders no restaurant ever confirmed.
	GetAllPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// AssignDriver claims an order for a driver with a single conditional
	// update: it succeeds only while the order is still in ReadyForPickup
	// status with no driver set. Exactly one concurrent caller can win;
	// losers receive Conflict when the order was claimed or moved on, and
	// ObjectNotFound when the order does not exist at all.
	AssignDriver(ctx context.Context, orderID, driverID kernel.UUID) error
}
