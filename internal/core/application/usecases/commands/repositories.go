// Package commands contains business operations that modify system state.
// Write operations follow one shape: validate the command, check entitlement,
// run the mutation inside a unit of work, publish notifications only after
// the commit.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Handlers depend on the narrowest interface that covers the aggregates they
// touch.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// OrderPaymentUoW manages transactions spanning an order and its payment.
	OrderPaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// OrderPaymentUoWFactory creates new order-payment unit of work instances.
	OrderPaymentUoWFactory interface {
		Create() OrderPaymentUoW
	}

	// OrderDriverUoW manages transactions spanning an order and a driver,
	// used when a delivery outcome credits the driver.
	OrderDriverUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
	}

	// OrderDriverUoWFactory creates new order-driver unit of work instances.
	OrderDriverUoWFactory interface {
		Create() OrderDriverUoW
	}

	// OrderPaymentDriverUoW manages transactions for status transitions, which
	// can settle the order's payment or credit the driver depending on the
	// target status.
	OrderPaymentDriverUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		DriverRepoFactory
	}

	// OrderPaymentDriverUoWFactory creates new order-payment-driver unit of
	// work instances.
	OrderPaymentDriverUoWFactory interface {
		Create() OrderPaymentDriverUoW
	}
)
