package order

import (
	"errors"
	"testing"

	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []Status {
	return []Status{
		StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusPickedUp, StatusInTransit, StatusDelivered, StatusCancelled,
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusPending:        "PENDING",
		StatusConfirmed:      "CONFIRMED",
		StatusPreparing:      "PREPARING",
		StatusReadyForPickup: "READY_FOR_PICKUP",
		StatusPickedUp:       "PICKED_UP",
		StatusInTransit:      "IN_TRANSIT",
		StatusDelivered:      "DELIVERED",
		StatusCancelled:      "CANCELLED",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestToStatus(t *testing.T) {
	for _, status := range allStatuses() {
		parsed, err := ToStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ToStatus("SHIPPED")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = ToStatus("UNKNOWN")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatusValidate(t *testing.T) {
	for _, status := range allStatuses() {
		assert.NoError(t, status.Validate())
	}

	assert.ErrorIs(t, StatusUnknown.Validate(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	for _, status := range allStatuses() {
		if status == StatusDelivered || status == StatusCancelled {
			continue
		}
		assert.False(t, status.IsTerminal(), status.String())
	}
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPreparing, StatusReadyForPickup, true},
		{StatusReadyForPickup, StatusPickedUp, true},
		{StatusPickedUp, StatusInTransit, true},
		{StatusInTransit, StatusDelivered, true},

		{StatusPending, StatusPreparing, false},
		{StatusPending, StatusDelivered, false},
		{StatusPreparing, StatusCancelled, false},
		{StatusReadyForPickup, StatusCancelled, false},
		{StatusPickedUp, StatusDelivered, false},
		{StatusConfirmed, StatusPending, false},
		{StatusInTransit, StatusPickedUp, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStatusesRejectEveryTransition(t *testing.T) {
	for _, terminal := range []Status{StatusDelivered, StatusCancelled} {
		for _, next := range allStatuses() {
			err := terminal.ValidateTransition(next)
			require.Error(t, err, "%s -> %s", terminal, next)
			assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		}
	}
}

func TestValidateTransitionDetail(t *testing.T) {
	err := StatusPending.ValidateTransition(StatusDelivered)
	require.Error(t, err)

	var transitionErr *errs.InvalidStateTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "PENDING", transitionErr.From)
	assert.Equal(t, "DELIVERED", transitionErr.To)
}

func TestRoleAllowedToSet(t *testing.T) {
	tests := map[Status]principal.Role{
		StatusConfirmed:      principal.RoleRestaurantOwner,
		StatusPreparing:      principal.RoleRestaurantOwner,
		StatusReadyForPickup: principal.RoleRestaurantOwner,
		StatusPickedUp:       principal.RoleDriver,
		StatusInTransit:      principal.RoleDriver,
		StatusDelivered:      principal.RoleDriver,
		StatusCancelled:      principal.RoleCustomer,
	}

	for status, want := range tests {
		role, ok := RoleAllowedToSet(status)
		require.True(t, ok, status.String())
		assert.Equal(t, want, role)
	}

	_, ok := RoleAllowedToSet(StatusPending)
	assert.False(t, ok)
}
