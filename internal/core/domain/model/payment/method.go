package payment

import "marketplace/internal/pkg/errs"

// Method identifies how a customer pays for an order.
type Method int

const (
	MethodUnknown Method = iota

	MethodCreditCard
	MethodDebitCard
	MethodDigitalWallet
	MethodCash
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		MethodUnknown:       "UNKNOWN",
		MethodCreditCard:    "CREDIT_CARD",
		MethodDebitCard:     "DEBIT_CARD",
		MethodDigitalWallet: "DIGITAL_WALLET",
		MethodCash:          "CASH",
	}
}

// Validate checks the Method value belongs to the closed set.
func (m Method) Validate() error {
	if m == MethodUnknown {
		return errs.NewValueIsInvalidError("payment method")
	}
	if _, ok := getMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidError("payment method")
	}
	return nil
}

// String returns the wire name of the payment method.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// ToMethod parses a wire-format payment method name.
func ToMethod(s string) (Method, error) {
	for method, name := range getMethodStrings() {
		if name == s && method != MethodUnknown {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidError("payment method")
}
