package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
)

// ChargeResult is the gateway's answer to a charge attempt.
type ChargeResult struct {
	// Approved reports whether the charge went through.
	Approved bool
	// TransactionID is the gateway reference, set only when approved.
	TransactionID string
	// DeclineReason explains a rejected charge, set only when declined.
	DeclineReason string
}

// PaymentGateway is the outbound contract to the payment processor.
// A declined charge is a normal result, not an error; errors mean the
// gateway itself could not be reached and map to UpstreamFailure.
type PaymentGateway interface {
	// Charge attempts to collect the amount using the given method.
	Charge(ctx context.Context, amount kernel.Money, method payment.Method) (ChargeResult, error)

	// Refund returns a previously charged amount against the original
	// gateway transaction.
	Refund(ctx context.Context, transactionID string, amount kernel.Money) error
}
