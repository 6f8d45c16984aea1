package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its lines directly from the
// database and enforces participant-only visibility.
type GetOrderQueryHandler struct {
	db        *gorm.DB
	authGuard *auth.Guard
}

// NewGetOrderQueryHandler creates a handler for the order detail query.
func NewGetOrderQueryHandler(db *gorm.DB, authGuard *auth.Guard) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, authGuard: authGuard}
}

// Handle returns the order detail, or ObjectNotFound when it does not exist,
// or Forbidden when the actor is not a participant.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		id, customerID, restaurantID      uuid.UUID
		driverID                          *uuid.UUID
		status, paymentStatus             string
		street, city, state, zipCode      string
		subtotal, deliveryFee, tax, total decimal.Decimal
		distanceKm                        *float64
		weatherCondition                  string
		etaMinutes                        int
		createdAt                         time.Time
		pickedUpAt, deliveredAt           *time.Time
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, customer_id, restaurant_id, driver_id,
			status, payment_status,
			street, city, state, zip_code,
			subtotal, delivery_fee, tax, total,
			distance_km, weather_condition, eta_minutes,
			created_at, picked_up_at, delivered_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&id, &customerID, &restaurantID, &driverID,
		&status, &paymentStatus,
		&street, &city, &state, &zipCode,
		&subtotal, &deliveryFee, &tax, &total,
		&distanceKm, &weatherCondition, &etaMinutes,
		&createdAt, &pickedUpAt, &deliveredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		Status:           status,
		PaymentStatus:    paymentStatus,
		Street:           street,
		City:             city,
		State:            state,
		ZipCode:          zipCode,
		Subtotal:         subtotal,
		DeliveryFee:      deliveryFee,
		Tax:              tax,
		Total:            total,
		DistanceKm:       distanceKm,
		WeatherCondition: weatherCondition,
		EtaMinutes:       etaMinutes,
		CreatedAt:        createdAt,
		PickedUpAt:       pickedUpAt,
		DeliveredAt:      deliveredAt,
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if driverID != nil {
		assignee, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.DriverID = &assignee
	}

	if err = h.requireParticipant(ctx, query.Actor(), resp); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

// requireParticipant lets exactly the three involved parties read the order.
func (h GetOrderQueryHandler) requireParticipant(
	ctx context.Context, actor principal.Principal, resp GetOrderQueryResponse,
) error {
	switch actor.Role() {
	case principal.RoleCustomer:
		if actor.SubjectID().IsEqual(resp.CustomerID) {
			return nil
		}
	case principal.RoleDriver:
		if resp.DriverID != nil && actor.SubjectID().IsEqual(*resp.DriverID) {
			return nil
		}
	case principal.RoleRestaurantOwner:
		return h.authGuard.RequireRestaurantOwner(ctx, actor, resp.RestaurantID)
	}
	return errs.NewForbiddenError("order is not visible to this principal")
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context, orderID kernel.UUID,
) ([]GetOrderQueryItemResponse, error) {
	items := make([]GetOrderQueryItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT menu_item_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY menu_item_id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item       GetOrderQueryItemResponse
			menuItemID uuid.UUID
		)
		if err = rows.Scan(&menuItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		if item.MenuItemID, err = kernel.UUIDFromBytes(menuItemID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
