package queries

import (
	"context"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetRestaurantOrdersQueryHandler reads the order queue of one restaurant
// for its owner.
type GetRestaurantOrdersQueryHandler struct {
	db        *gorm.DB
	authGuard *auth.Guard
}

// NewGetRestaurantOrdersQueryHandler creates a handler for the restaurant
// queue query.
func NewGetRestaurantOrdersQueryHandler(
	db *gorm.DB, authGuard *auth.Guard,
) GetRestaurantOrdersQueryHandler {
	return GetRestaurantOrdersQueryHandler{db: db, authGuard: authGuard}
}

// Handle returns the restaurant's orders, newest first. Only the owner of
// the restaurant may read its queue.
func (h GetRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantOrdersQuery,
) ([]GetRestaurantOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.authGuard.RequireRestaurantOwner(ctx, query.Actor(), query.RestaurantID()); err != nil {
		return nil, err
	}

	responses := make([]GetRestaurantOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, customer_id, status, payment_status, total, created_at
		FROM orders
		WHERE restaurant_id = ?
		ORDER BY created_at DESC
	`, query.RestaurantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, customerID        uuid.UUID
			status, paymentStatus string
			total                 decimal.Decimal
			createdAt             time.Time
		)
		if err = rows.Scan(&id, &customerID, &status, &paymentStatus, &total, &createdAt); err != nil {
			return nil, err
		}

		response := GetRestaurantOrdersQueryResponse{
			Status:        status,
			PaymentStatus: paymentStatus,
			Total:         total,
			CreatedAt:     createdAt,
		}
		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, rows.Err()
}
