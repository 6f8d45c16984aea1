package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM. It reads
// through the main connection, outside any unit of work.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetRestaurant retrieves a restaurant snapshot by ID.
func (r *GormCatalogRepository) GetRestaurant(
	ctx context.Context, id kernel.UUID,
) (ports.RestaurantSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RestaurantSnapshot{}, errs.NewObjectNotFoundError("restaurant", id)
		}
		return ports.RestaurantSnapshot{}, err
	}

	return restaurantToSnapshot(dto)
}

// GetMenuItems retrieves snapshots for the given menu item IDs. Every
// requested ID must resolve; a missing one fails the whole lookup.
func (r *GormCatalogRepository) GetMenuItems(
	ctx context.Context, ids []kernel.UUID,
) ([]ports.MenuItemSnapshot, error) {
	if len(ids) == 0 {
		return []ports.MenuItemSnapshot{}, nil
	}

	rawIDs := lo.Map(ids, func(id kernel.UUID, _ int) any { return id.Bytes() })

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", rawIDs).Error; err != nil {
		return nil, err
	}

	snapshots := make([]ports.MenuItemSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		snapshot, err := menuItemToSnapshot(dto)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	found := lo.KeyBy(snapshots, func(s ports.MenuItemSnapshot) string { return s.ID.String() })
	for _, id := range ids {
		if _, ok := found[id.String()]; !ok {
			return nil, errs.NewObjectNotFoundError("menu item", id)
		}
	}

	return snapshots, nil
}

// AddRestaurant inserts a restaurant row. Used by seeding and test setup;
// the catalog port itself stays read-only.
func (r *GormCatalogRepository) AddRestaurant(
	ctx context.Context, snapshot ports.RestaurantSnapshot,
) error {
	var latitude, longitude *float64
	if snapshot.Location != nil {
		lat, lon := snapshot.Location.Latitude(), snapshot.Location.Longitude()
		latitude, longitude = &lat, &lon
	}

	dto := RestaurantDTO{
		ID:                snapshot.ID.Bytes(),
		OwnerID:           snapshot.OwnerID.Bytes(),
		Name:              snapshot.Name,
		Latitude:          latitude,
		Longitude:         longitude,
		StaticDeliveryFee: snapshot.StaticDeliveryFee.Decimal(),
		IsOpen:            snapshot.IsOpen,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddMenuItem inserts a menu item row. Used by seeding and test setup.
func (r *GormCatalogRepository) AddMenuItem(
	ctx context.Context, snapshot ports.MenuItemSnapshot,
) error {
	dto := MenuItemDTO{
		ID:           snapshot.ID.Bytes(),
		RestaurantID: snapshot.RestaurantID.Bytes(),
		Name:         snapshot.Name,
		Price:        snapshot.Price.Decimal(),
		IsAvailable:  snapshot.IsAvailable,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
