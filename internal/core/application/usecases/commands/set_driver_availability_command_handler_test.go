package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvailabilityHandler(
	t *testing.T, factory *MockDriverUoWFactory,
) commands.SetDriverAvailabilityCommandHandler {
	t.Helper()
	return commands.NewSetDriverAvailabilityCommandHandler(
		factory, testGuard(t, new(MockCatalogRepository)),
	)
}

func TestSetDriverAvailabilityCommandHandler_Handle_GoOnline(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	aggregate, err := driver.NewDriver(driverID, "Sam Porter", time.Now().UTC())
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	factory := new(MockDriverUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, driverID).Return(aggregate, nil).Once()
	driverRepo.On("Update", ctx, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	lat, lng := 37.7749, -122.4194
	actor := testPrincipal(t, driverID, principal.RoleDriver)
	cmd, err := commands.NewSetDriverAvailabilityCommand(actor, true, &lat, &lng)
	require.NoError(t, err)

	handler := newAvailabilityHandler(t, factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.True(t, aggregate.IsAvailable())
	require.NotNil(t, aggregate.Location())
	assert.InDelta(t, lat, aggregate.Location().Latitude(), 1e-9)
	driverRepo.AssertExpectations(t)
}

func TestSetDriverAvailabilityCommandHandler_Handle_GoOfflineKeepsLocation(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	location, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	aggregate, err := driver.RestoreDriver(
		driverID, "Sam Porter", &location, true, kernel.ZeroMoney(), time.Now().UTC(),
	)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	factory := new(MockDriverUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, driverID).Return(aggregate, nil).Once()
	driverRepo.On("Update", ctx, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	actor := testPrincipal(t, driverID, principal.RoleDriver)
	cmd, err := commands.NewSetDriverAvailabilityCommand(actor, false, nil, nil)
	require.NoError(t, err)

	handler := newAvailabilityHandler(t, factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.False(t, aggregate.IsAvailable())
	assert.NotNil(t, aggregate.Location())
}

func TestSetDriverAvailabilityCommandHandler_Handle_NonDriverForbidden(t *testing.T) {
	ctx := t.Context()
	factory := new(MockDriverUoWFactory)

	lat, lng := 37.7749, -122.4194
	actor := testPrincipal(t, kernel.NewUUID(), principal.RoleCustomer)
	cmd, err := commands.NewSetDriverAvailabilityCommand(actor, true, &lat, &lng)
	require.NoError(t, err)

	handler := newAvailabilityHandler(t, factory)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestNewSetDriverAvailabilityCommand_OnlineRequiresLocation(t *testing.T) {
	actor := testPrincipal(t, kernel.NewUUID(), principal.RoleDriver)

	_, err := commands.NewSetDriverAvailabilityCommand(actor, true, nil, nil)

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
