package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand represents a system sweep cancelling orders that
// sat in Pending longer than the given time to live. It carries no principal:
// the sweep is an internal actor, not a user operation.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates a validated expiry sweep command.
func NewExpirePendingOrdersCommand(ttl time.Duration) (ExpirePendingOrdersCommand, error) {
	if ttl <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidError("pending order ttl")
	}

	return ExpirePendingOrdersCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// TTL returns how long an order may stay Pending before it expires.
func (c ExpirePendingOrdersCommand) TTL() time.Duration {
	return c.ttl
}
