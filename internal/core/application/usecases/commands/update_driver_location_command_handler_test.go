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

func TestUpdateDriverLocationCommandHandler_Handle(t *testing.T) {
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

	actor := testPrincipal(t, driverID, principal.RoleDriver)
	cmd, err := commands.NewUpdateDriverLocationCommand(actor, 51.5074, -0.1278)
	require.NoError(t, err)

	handler := commands.NewUpdateDriverLocationCommandHandler(
		factory, testGuard(t, new(MockCatalogRepository)),
	)
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, aggregate.Location())
	assert.InDelta(t, 51.5074, aggregate.Location().Latitude(), 1e-9)
	assert.InDelta(t, -0.1278, aggregate.Location().Longitude(), 1e-9)
	driverRepo.AssertExpectations(t)
}

func TestUpdateDriverLocationCommandHandler_Handle_UnknownDriver(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	factory := new(MockDriverUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("Get", ctx, driverID).
		Return(nil, errs.NewObjectNotFoundError("driver", driverID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	actor := testPrincipal(t, driverID, principal.RoleDriver)
	cmd, err := commands.NewUpdateDriverLocationCommand(actor, 51.5074, -0.1278)
	require.NoError(t, err)

	handler := commands.NewUpdateDriverLocationCommandHandler(
		factory, testGuard(t, new(MockCatalogRepository)),
	)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit")
}

func TestNewUpdateDriverLocationCommand_RejectsBadCoordinates(t *testing.T) {
	actor := testPrincipal(t, kernel.NewUUID(), principal.RoleDriver)

	_, err := commands.NewUpdateDriverLocationCommand(actor, 91.0, 0.0)

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
