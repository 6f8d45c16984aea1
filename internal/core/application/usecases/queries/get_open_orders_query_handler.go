package queries

import (
	"context"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/principal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads the claimable-orders feed for drivers.
// Reads go straight through the database; the write-side repositories are
// not involved.
type GetOpenOrdersQueryHandler struct {
	db        *gorm.DB
	authGuard *auth.Guard
}

// NewGetOpenOrdersQueryHandler creates a handler for the open-orders feed.
func NewGetOpenOrdersQueryHandler(db *gorm.DB, authGuard *auth.Guard) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db, authGuard: authGuard}
}

// Handle returns orders ready for pickup with no driver assigned, oldest
// first so long-waiting orders surface at the top of the feed.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.authGuard.RequireRole(query.Actor(), principal.RoleDriver); err != nil {
		return nil, err
	}

	responses := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			street,
			city,
			delivery_fee,
			distance_km,
			eta_minutes
		FROM orders
		WHERE status = ? AND driver_id IS NULL
		ORDER BY created_at
	`, order.StatusReadyForPickup.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id uuid.UUID
		var fee decimal.Decimal

		if err = rows.Scan(
			&id,
			&resp.Street,
			&resp.City,
			&fee,
			&resp.DistanceKm,
			&resp.EtaMinutes,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.DeliveryFee = fee
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
