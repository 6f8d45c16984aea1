// Package paymentrepo provides data transfer objects and mapping functions
// for payment persistence.
package paymentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for persisting payment aggregates.
// OrderID carries a unique index: each order has at most one live payment row.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	Amount         decimal.Decimal `gorm:"type:numeric(12,2)"`
	RefundedAmount decimal.Decimal `gorm:"type:numeric(12,2)"`

	Method        string `gorm:"type:varchar(32)"`
	Status        string `gorm:"type:varchar(32);index"`
	TransactionID string `gorm:"type:varchar(64)"`
	FailureReason string

	CreatedAt time.Time
	PaidAt    *time.Time
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment aggregate to its database representation.
func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		Amount:         aggregate.Amount().Decimal(),
		RefundedAmount: aggregate.RefundedAmount().Decimal(),
		Method:         aggregate.Method().String(),
		Status:         aggregate.Status().String(),
		TransactionID:  aggregate.TransactionID(),
		FailureReason:  aggregate.FailureReason(),
		CreatedAt:      aggregate.CreatedAt(),
		PaidAt:         aggregate.PaidAt(),
	}
}

// toDomain converts a database DTO back to a payment aggregate via RestorePayment.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	// A payment that was never charged persists the Unknown method, which the
	// strict wire parser rejects.
	method := payment.MethodUnknown
	if dto.Method != payment.MethodUnknown.String() {
		method, err = payment.ToMethod(dto.Method)
		if err != nil {
			return nil, err
		}
	}
	status, err := payment.ToStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		kernel.NewMoneyFromDecimal(dto.Amount),
		kernel.NewMoneyFromDecimal(dto.RefundedAmount),
		method,
		status,
		dto.TransactionID,
		dto.FailureReason,
		dto.CreatedAt,
		dto.PaidAt,
	)
}
