package order

import "marketplace/internal/pkg/errs"

// PaymentStatus is the order-side view of the linked payment. It is correlated
// with, but narrower than, the payment aggregate's own status set: the order
// only cares whether money is pending, collected, failed, or returned.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota

	PaymentStatusPending
	PaymentStatusCompleted
	PaymentStatusFailed
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:   "UNKNOWN",
		PaymentStatusPending:   "PENDING",
		PaymentStatusCompleted: "COMPLETED",
		PaymentStatusFailed:    "FAILED",
		PaymentStatusRefunded:  "REFUNDED",
	}
}

// Validate checks the PaymentStatus value belongs to the closed set.
func (s PaymentStatus) Validate() error {
	if s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidError("payment status")
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("payment status")
	}
	return nil
}

// String returns the wire name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ToPaymentStatus parses a wire-format payment status name.
func ToPaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidError("payment status")
}
