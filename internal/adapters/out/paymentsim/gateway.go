// Package paymentsim provides a simulated payment gateway. Charges are
// approved or declined by a seeded random generator so the declined and
// refund paths stay exercisable without a real processor.
package paymentsim

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// declineChance is the probability a charge is declined.
const declineChance = 0.1

var declineReasons = []string{
	"insufficient funds",
	"card expired",
	"suspected fraud",
}

// Gateway implements PaymentGateway with simulated outcomes.
type Gateway struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGateway creates a simulated payment gateway with the given seed.
func NewGateway(seed int64) *Gateway {
	return &Gateway{rng: rand.New(rand.NewSource(seed))}
}

// Charge attempts to collect the given amount. Cash orders are always
// approved since collection happens at the door.
func (g *Gateway) Charge(
	_ context.Context, amount kernel.Money, method payment.Method,
) (ports.ChargeResult, error) {
	if !amount.IsPositive() {
		return ports.ChargeResult{}, errs.NewValueIsInvalidError("amount")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if method != payment.MethodCash && g.rng.Float64() < declineChance {
		return ports.ChargeResult{
			Approved:      false,
			DeclineReason: declineReasons[g.rng.Intn(len(declineReasons))],
		}, nil
	}

	return ports.ChargeResult{
		Approved:      true,
		TransactionID: newTransactionID(),
	}, nil
}

// Refund returns funds for a prior charge. The simulator accepts any
// well-formed request.
func (g *Gateway) Refund(_ context.Context, transactionID string, amount kernel.Money) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transaction id")
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	return nil
}

// newTransactionID mints identifiers like "TXN-1A2B3C4D".
func newTransactionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN-" + strings.ToUpper(raw[:8])
}
