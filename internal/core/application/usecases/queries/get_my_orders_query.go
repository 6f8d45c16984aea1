package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetMyOrdersQueryIsNotConstructed = errors.New(
	"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
)

// GetMyOrdersQuery retrieves the requesting customer's order history.
type GetMyOrdersQuery struct {
	actor principal.Principal

	guard guard.ConstructorGuard
}

// NewGetMyOrdersQuery creates a validated order history query.
func NewGetMyOrdersQuery(actor principal.Principal) (GetMyOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetMyOrdersQuery{}, err
	}

	return GetMyOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

// Actor returns the requesting customer's principal.
func (q GetMyOrdersQuery) Actor() principal.Principal {
	return q.actor
}

// GetMyOrdersQueryResponse is one order in the customer's history.
type GetMyOrdersQueryResponse struct {
	ID            kernel.UUID
	RestaurantID  kernel.UUID
	Status        string
	PaymentStatus string
	Total         decimal.Decimal
	EtaMinutes    int
	CreatedAt     time.Time
}
