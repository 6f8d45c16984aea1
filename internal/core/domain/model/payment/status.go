package payment

import "marketplace/internal/pkg/errs"

// Status is the lifecycle state of a payment. Unlike the order status machine
// it is driven by gateway outcomes rather than user actions.
type Status int

const (
	StatusUnknown Status = iota

	StatusPending
	StatusProcessing
	StatusCompleted
	StatusFailed
	StatusRefunded
	StatusPartiallyRefunded
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:           "UNKNOWN",
		StatusPending:           "PENDING",
		StatusProcessing:        "PROCESSING",
		StatusCompleted:         "COMPLETED",
		StatusFailed:            "FAILED",
		StatusRefunded:          "REFUNDED",
		StatusPartiallyRefunded: "PARTIALLY_REFUNDED",
		StatusCancelled:         "CANCELLED",
	}
}

// Validate checks the Status value belongs to the closed set.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("payment status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("payment status")
	}
	return nil
}

// String returns the wire name of the payment status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ToStatus parses a wire-format payment status name.
func ToStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("payment status")
}
