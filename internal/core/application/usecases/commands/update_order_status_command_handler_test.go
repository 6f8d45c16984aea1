package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_OwnerConfirms(t *testing.T) {
	ctx := t.Context()

	ownerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	aggregate := testOrder(t, kernel.NewUUID(), restaurantID)
	actor := testPrincipal(t, ownerID, principal.RoleRestaurantOwner)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actor, order.StatusConfirmed)
	require.NoError(t, err)

	catalog := new(MockCatalogRepository)
	catalog.On("GetRestaurant", ctx, restaurantID).
		Return(ports.RestaurantSnapshot{ID: restaurantID, OwnerID: ownerID}, nil).Once()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderPaymentDriverUoWFactory)
	publisher := new(MockNotificationPublisher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("PublishStatusChange", ctx, mock.MatchedBy(func(e ports.StatusChangeEvent) bool {
		return e.NewStatus == "CONFIRMED"
	})).Return(nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(
		factory, services.NewPricingEngine(), new(MockPaymentGateway), publisher,
		testGuard(t, catalog), testLogger(),
	)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.StatusConfirmed, aggregate.Status())
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveryCreditsDriver(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	aggregate := testOrder(t, kernel.NewUUID(), kernel.NewUUID())
	advanceOrder(t, aggregate, order.StatusReadyForPickup)
	require.NoError(t, aggregate.AssignDriver(driverID))
	now := time.Now().UTC()
	require.NoError(t, aggregate.UpdateStatus(order.StatusPickedUp, principal.RoleDriver, now))
	require.NoError(t, aggregate.UpdateStatus(order.StatusInTransit, principal.RoleDriver, now))

	actor := testPrincipal(t, driverID, principal.RoleDriver)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actor, order.StatusDelivered)
	require.NoError(t, err)

	assignee := onlineDriver(t, driverID)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	factory := new(MockOrderPaymentDriverUoWFactory)
	publisher := new(MockNotificationPublisher)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	driverRepo.On("Get", ctx, driverID).Return(assignee, nil).Once()
	driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("PublishStatusChange", ctx, mock.Anything).Return(nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(
		factory, services.NewPricingEngine(), new(MockPaymentGateway), publisher,
		testGuard(t, new(MockCatalogRepository)), testLogger(),
	)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.StatusDelivered, aggregate.Status())
	assert.Equal(t, order.PaymentStatusCompleted, aggregate.PaymentStatus())
	// 80% of the 4.00 delivery fee
	assert.Equal(t, "3.20", assignee.TotalEarnings().String())

	driverRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelRefundsCompletedPayment(t *testing.T) {
	ctx := t.Context()

	customerID := kernel.NewUUID()
	aggregate := testOrder(t, customerID, kernel.NewUUID())
	pay := completedPaymentFor(t, aggregate, "TXN-1A2B3C4D")
	require.NoError(t, aggregate.SyncPaymentStatus(order.PaymentStatusCompleted))

	actor := testPrincipal(t, customerID, principal.RoleCustomer)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actor, order.StatusCancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	factory := new(MockOrderPaymentDriverUoWFactory)
	gateway := new(MockPaymentGateway)
	publisher := new(MockNotificationPublisher)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PaymentRepository").Return(paymentRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	paymentRepo.On("GetByOrderID", ctx, aggregate.ID()).Return(pay, nil).Once()
	gateway.On("Refund", ctx, "TXN-1A2B3C4D", pay.Amount()).Return(nil).Once()
	paymentRepo.On("Update", ctx, pay).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("PublishStatusChange", ctx, mock.MatchedBy(func(e ports.StatusChangeEvent) bool {
		return e.NewStatus == "CANCELLED"
	})).Return(nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(
		factory, services.NewPricingEngine(), gateway, publisher,
		testGuard(t, new(MockCatalogRepository)), testLogger(),
	)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.StatusCancelled, aggregate.Status())
	assert.Equal(t, order.PaymentStatusRefunded, aggregate.PaymentStatus())
	assert.Equal(t, payment.StatusRefunded, pay.Status())
	assert.True(t, pay.RefundedAmount().IsEqual(pay.Amount()))
	gateway.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_WrongRoleForStatus(t *testing.T) {
	ctx := t.Context()

	actor := testPrincipal(t, kernel.NewUUID(), principal.RoleDriver)
	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), actor, order.StatusConfirmed)
	require.NoError(t, err)

	factory := new(MockOrderPaymentDriverUoWFactory)
	handler := commands.NewUpdateOrderStatusCommandHandler(
		factory, services.NewPricingEngine(), new(MockPaymentGateway), new(MockNotificationPublisher),
		testGuard(t, new(MockCatalogRepository)), testLogger(),
	)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateOrderStatusCommandHandler_Handle_UnassignedDriverForbidden(t *testing.T) {
	ctx := t.Context()

	aggregate := testOrder(t, kernel.NewUUID(), kernel.NewUUID())
	advanceOrder(t, aggregate, order.StatusReadyForPickup)

	actor := testPrincipal(t, kernel.NewUUID(), principal.RoleDriver)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actor, order.StatusPickedUp)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderPaymentDriverUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(
		factory, services.NewPricingEngine(), new(MockPaymentGateway), new(MockNotificationPublisher),
		testGuard(t, new(MockCatalogRepository)), testLogger(),
	)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.StatusReadyForPickup, aggregate.Status())
	uow.AssertNotCalled(t, "Commit")
}

func TestUpdateOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()

	ownerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	aggregate := testOrder(t, kernel.NewUUID(), restaurantID)

	actor := testPrincipal(t, ownerID, principal.RoleRestaurantOwner)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actor, order.StatusReadyForPickup)
	require.NoError(t, err)

	catalog := new(MockCatalogRepository)
	catalog.On("GetRestaurant", ctx, restaurantID).
		Return(ports.RestaurantSnapshot{ID: restaurantID, OwnerID: ownerID}, nil).Once()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderPaymentDriverUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(
		factory, services.NewPricingEngine(), new(MockPaymentGateway), new(MockNotificationPublisher),
		testGuard(t, catalog), testLogger(),
	)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Equal(t, order.StatusPending, aggregate.Status())
	uow.AssertNotCalled(t, "Commit")
}
