package queries

import (
	"context"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetMyOrdersQueryHandler reads a customer's own order history.
type GetMyOrdersQueryHandler struct {
	db        *gorm.DB
	authGuard *auth.Guard
}

// NewGetMyOrdersQueryHandler creates a handler for the customer history query.
func NewGetMyOrdersQueryHandler(db *gorm.DB, authGuard *auth.Guard) GetMyOrdersQueryHandler {
	return GetMyOrdersQueryHandler{db: db, authGuard: authGuard}
}

// Handle returns the actor's orders, newest first.
func (h GetMyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMyOrdersQuery,
) ([]GetMyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.authGuard.RequireRole(query.Actor(), principal.RoleCustomer); err != nil {
		return nil, err
	}

	responses := make([]GetMyOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, restaurant_id, status, payment_status, total, eta_minutes, created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, query.Actor().SubjectID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, restaurantID      uuid.UUID
			status, paymentStatus string
			total                 decimal.Decimal
			etaMinutes            int
			createdAt             time.Time
		)
		if err = rows.Scan(
			&id, &restaurantID, &status, &paymentStatus, &total, &etaMinutes, &createdAt,
		); err != nil {
			return nil, err
		}

		response := GetMyOrdersQueryResponse{
			Status:        status,
			PaymentStatus: paymentStatus,
			Total:         total,
			EtaMinutes:    etaMinutes,
			CreatedAt:     createdAt,
		}
		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, rows.Err()
}
