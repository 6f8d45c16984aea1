// Package driverrepo provides data transfer objects and mapping functions
// for driver persistence.
package driverrepo

import (
	"time"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DriverDTO represents the database structure for persisting driver aggregates.
type DriverDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string

	Latitude  *float64
	Longitude *float64
	Available bool `gorm:"index"`

	TotalEarnings decimal.Decimal `gorm:"type:numeric(12,2)"`

	CreatedAt time.Time
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var latitude, longitude *float64
	if location := aggregate.Location(); location != nil {
		lat, lon := location.Latitude(), location.Longitude()
		latitude, longitude = &lat, &lon
	}

	return DriverDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Latitude:      latitude,
		Longitude:     longitude,
		Available:     aggregate.IsAvailable(),
		TotalEarnings: aggregate.TotalEarnings().Decimal(),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO back to a driver aggregate via RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		location,
		dto.Available,
		kernel.NewMoneyFromDecimal(dto.TotalEarnings),
		dto.CreatedAt,
	)
}
