package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRestaurantOrdersQueryIsNotConstructed = errors.New(
	"GetRestaurantOrdersQuery must be created via NewGetRestaurantOrdersQuery constructor",
)

// GetRestaurantOrdersQuery retrieves the incoming orders of one restaurant.
type GetRestaurantOrdersQuery struct {
	restaurantID kernel.UUID
	actor        principal.Principal

	guard guard.ConstructorGuard
}

// NewGetRestaurantOrdersQuery creates a validated restaurant orders query.
func NewGetRestaurantOrdersQuery(
	restaurantID kernel.UUID,
	actor principal.Principal,
) (GetRestaurantOrdersQuery, error) {
	if err := errors.Join(restaurantID.Validate(), actor.Validate()); err != nil {
		return GetRestaurantOrdersQuery{}, err
	}

	return GetRestaurantOrdersQuery{
		restaurantID: restaurantID,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantOrdersQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose orders are listed.
func (q GetRestaurantOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Actor returns the requesting principal.
func (q GetRestaurantOrdersQuery) Actor() principal.Principal {
	return q.actor
}

// GetRestaurantOrdersQueryResponse is one order in a restaurant's queue.
type GetRestaurantOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	Status        string
	PaymentStatus string
	Total         decimal.Decimal
	CreatedAt     time.Time
}
