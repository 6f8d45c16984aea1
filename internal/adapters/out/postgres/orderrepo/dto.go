// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It converts between the order aggregate and its
// relational representation, including the order line child table.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status columns carry wire names so read-side queries can filter on them
// without knowing the enum encoding.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`

	Status        string `gorm:"type:varchar(32);index"`
	PaymentStatus string `gorm:"type:varchar(32)"`

	Street    string
	City      string
	State     string
	ZipCode   string
	Latitude  *float64
	Longitude *float64

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(12,2)"`
	Tax         decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2)"`

	DistanceKm          *float64
	WeatherCondition    string
	BadWeatherSurcharge bool
	PeakHourSurcharge   bool
	EtaMinutes          int

	CreatedAt   time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one frozen order line.
type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var latitude, longitude *float64
	if point := aggregate.DeliveryAddress().Point(); point != nil {
		lat, lon := point.Latitude(), point.Longitude()
		latitude, longitude = &lat, &lon
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		CustomerID:          aggregate.CustomerID().Bytes(),
		RestaurantID:        aggregate.RestaurantID().Bytes(),
		DriverID:            driverID,
		Status:              aggregate.Status().String(),
		PaymentStatus:       aggregate.PaymentStatus().String(),
		Street:              aggregate.DeliveryAddress().Street(),
		City:                aggregate.DeliveryAddress().City(),
		State:               aggregate.DeliveryAddress().State(),
		ZipCode:             aggregate.DeliveryAddress().ZipCode(),
		Latitude:            latitude,
		Longitude:           longitude,
		Items:               items,
		Subtotal:            aggregate.Subtotal().Decimal(),
		DeliveryFee:         aggregate.DeliveryFee().Decimal(),
		Tax:                 aggregate.Tax().Decimal(),
		Total:               aggregate.Total().Decimal(),
		DistanceKm:          aggregate.DistanceKm(),
		WeatherCondition:    aggregate.WeatherCondition(),
		BadWeatherSurcharge: aggregate.BadWeatherSurcharge(),
		PeakHourSurcharge:   aggregate.PeakHourSurcharge(),
		EtaMinutes:          aggregate.EtaMinutes(),
		CreatedAt:           aggregate.CreatedAt(),
		PickedUpAt:          aggregate.PickedUpAt(),
		DeliveredAt:         aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO back to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		point = &p
	}

	address, err := order.NewAddress(dto.Street, dto.City, dto.State, dto.ZipCode, point)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(
			menuItemID,
			itemDTO.Name,
			itemDTO.Quantity,
			kernel.NewMoneyFromDecimal(itemDTO.UnitPrice),
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.ToStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ToPaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		restaurantID,
		driverID,
		address,
		items,
		kernel.NewMoneyFromDecimal(dto.Subtotal),
		kernel.NewMoneyFromDecimal(dto.DeliveryFee),
		kernel.NewMoneyFromDecimal(dto.Tax),
		kernel.NewMoneyFromDecimal(dto.Total),
		status,
		paymentStatus,
		order.PricingDetails{
			DistanceKm:          dto.DistanceKm,
			WeatherCondition:    dto.WeatherCondition,
			BadWeatherSurcharge: dto.BadWeatherSurcharge,
			PeakHourSurcharge:   dto.PeakHourSurcharge,
			EtaMinutes:          dto.EtaMinutes,
		},
		dto.CreatedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
	)
}
