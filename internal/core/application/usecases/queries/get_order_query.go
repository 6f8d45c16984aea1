package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines and money breakdown.
// Visibility follows participation: the ordering customer, the owner of the
// restaurant, and the assigned driver can read it; nobody else can.
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   principal.Principal

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated order detail query.
func NewGetOrderQuery(orderID kernel.UUID, actor principal.Principal) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the requesting principal.
func (q GetOrderQuery) Actor() principal.Principal {
	return q.actor
}

// GetOrderQueryItemResponse is one line of the order detail.
type GetOrderQueryItemResponse struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// GetOrderQueryResponse is the full order detail.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	RestaurantID  kernel.UUID
	DriverID      *kernel.UUID
	Status        string
	PaymentStatus string

	Street  string
	City    string
	State   string
	ZipCode string

	Items []GetOrderQueryItemResponse

	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal

	DistanceKm       *float64
	WeatherCondition string
	EtaMinutes       int

	CreatedAt   time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}
