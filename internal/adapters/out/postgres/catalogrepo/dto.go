// Package catalogrepo provides the read-only gateway to restaurant and menu
// data. Rows map to lightweight snapshots rather than aggregates since order
// placement never mutates the catalog.
package catalogrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantDTO represents the database structure for restaurant rows.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`
	Name    string

	Latitude  *float64
	Longitude *float64

	StaticDeliveryFee decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsOpen            bool
}

// TableName specifies the database table name for restaurant rows.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuItemDTO represents the database structure for menu item rows.
type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string

	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsAvailable bool
}

// TableName specifies the database table name for menu item rows.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func restaurantToSnapshot(dto RestaurantDTO) (ports.RestaurantSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return ports.RestaurantSnapshot{}, pointErr
		}
		location = &point
	}

	return ports.RestaurantSnapshot{
		ID:                id,
		OwnerID:           ownerID,
		Name:              dto.Name,
		Location:          location,
		StaticDeliveryFee: kernel.NewMoneyFromDecimal(dto.StaticDeliveryFee),
		IsOpen:            dto.IsOpen,
	}, nil
}

func menuItemToSnapshot(dto MenuItemDTO) (ports.MenuItemSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}

	return ports.MenuItemSnapshot{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         dto.Name,
		Price:        kernel.NewMoneyFromDecimal(dto.Price),
		IsAvailable:  dto.IsAvailable,
	}, nil
}
