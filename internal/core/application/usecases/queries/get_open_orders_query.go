// Package queries contains the read side: handlers that bypass the aggregates
// and read projection-shaped rows straight from the database.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery retrieves the feed of orders a driver can claim:
// ready for pickup and not yet assigned.
type GetOpenOrdersQuery struct {
	actor principal.Principal

	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a validated open-orders feed query.
func NewGetOpenOrdersQuery(actor principal.Principal) (GetOpenOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOpenOrdersQuery{}, err
	}

	return GetOpenOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// Actor returns the requesting driver's principal.
func (q GetOpenOrdersQuery) Actor() principal.Principal {
	return q.actor
}

// GetOpenOrdersQueryResponse is one claimable order in the feed, with just
// enough detail for a driver to decide whether to take it.
type GetOpenOrdersQueryResponse struct {
	ID          kernel.UUID
	Street      string
	City        string
	DeliveryFee decimal.Decimal
	DistanceKm  *float64
	EtaMinutes  int
}
