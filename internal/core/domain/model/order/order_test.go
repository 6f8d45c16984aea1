package order

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, quantity int, unitPrice string) Item {
	t.Helper()
	item, err := NewItem(kernel.NewUUID(), name, quantity, kernel.MustMoney(unitPrice))
	require.NoError(t, err)
	return item
}

func testAddress(t *testing.T) Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(37.7749, -122.4194)
	require.NoError(t, err)
	address, err := NewAddress("123 Market St", "San Francisco", "CA", "94103", &point)
	require.NoError(t, err)
	return address
}

func testPricing() PricingDetails {
	distance := 6.4
	return PricingDetails{
		DeliveryFee: kernel.MustMoney("4.00"),
		DistanceKm:  &distance,
		EtaMinutes:  30,
	}
}

func newPendingOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testAddress(t),
		[]Item{
			mustItem(t, "Margherita", 2, "10.00"),
			mustItem(t, "Tiramisu", 1, "5.50"),
		},
		testPricing(),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

// advance drives a fresh order forward to the target status using the role
// each step requires.
func advance(t *testing.T, o *Order, target Status) {
	t.Helper()
	path := []Status{
		StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusPickedUp, StatusInTransit, StatusDelivered,
	}
	now := time.Now().UTC()
	for _, next := range path {
		role, ok := RoleAllowedToSet(next)
		require.True(t, ok)
		if next == StatusPickedUp && o.DriverID() == nil {
			require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		}
		require.NoError(t, o.UpdateStatus(next, role, now))
		if next == target {
			return
		}
	}
	t.Fatalf("unreachable target status %s", target)
}

func TestNewOrderFreezesPrices(t *testing.T) {
	o := newPendingOrder(t)

	// 2 x 10.00 + 1 x 5.50
	assert.Equal(t, "25.50", o.Subtotal().String())
	assert.Equal(t, "4.00", o.DeliveryFee().String())
	// 25.50 * 0.085 = 2.1675, rounded half-up
	assert.Equal(t, "2.17", o.Tax().String())
	assert.Equal(t, "31.67", o.Total().String())

	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus())
	assert.Nil(t, o.DriverID())
	assert.Nil(t, o.PickedUpAt())
	assert.Nil(t, o.DeliveredAt())
	require.NotNil(t, o.DistanceKm())
	assert.InDelta(t, 6.4, *o.DistanceKm(), 0.0001)
	assert.Equal(t, 30, o.EtaMinutes())
}

func TestNewOrderTotalInvariant(t *testing.T) {
	o := newPendingOrder(t)

	want := o.Subtotal().Add(o.DeliveryFee()).Add(o.Tax())
	assert.True(t, o.Total().IsEqual(want))
}

func TestNewOrderRequiresItems(t *testing.T) {
	_, err := NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testAddress(t), nil, testPricing(), time.Now().UTC(),
	)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewOrderRejectsNegativeFee(t *testing.T) {
	pricing := testPricing()
	pricing.DeliveryFee = kernel.MustMoney("-1.00")

	_, err := NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testAddress(t),
		[]Item{mustItem(t, "Margherita", 1, "10.00")},
		pricing, time.Now().UTC(),
	)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrderItemsAreCopied(t *testing.T) {
	o := newPendingOrder(t)

	items := o.Items()
	items[0] = Item{}

	assert.Equal(t, "Margherita", o.Items()[0].Name())
}

func TestUpdateStatusFullLifecycle(t *testing.T) {
	o := newPendingOrder(t)

	advance(t, o, StatusDelivered)

	assert.Equal(t, StatusDelivered, o.Status())
	assert.Equal(t, PaymentStatusCompleted, o.PaymentStatus())
	assert.NotNil(t, o.PickedUpAt())
	assert.NotNil(t, o.DeliveredAt())
}

func TestUpdateStatusStampsPickupTime(t *testing.T) {
	o := newPendingOrder(t)
	advance(t, o, StatusReadyForPickup)
	require.Nil(t, o.PickedUpAt())

	pickupTime := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, o.AssignDriver(kernel.NewUUID()))
	require.NoError(t, o.UpdateStatus(StatusPickedUp, principal.RoleDriver, pickupTime))

	require.NotNil(t, o.PickedUpAt())
	assert.Equal(t, pickupTime, *o.PickedUpAt())
	assert.Nil(t, o.DeliveredAt())
}

func TestUpdateStatusRejectsWrongRole(t *testing.T) {
	tests := []struct {
		name string
		next Status
		role principal.Role
	}{
		{"customer cannot confirm", StatusConfirmed, principal.RoleCustomer},
		{"driver cannot confirm", StatusConfirmed, principal.RoleDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newPendingOrder(t)

			err := o.UpdateStatus(tt.next, tt.role, time.Now().UTC())
			assert.ErrorIs(t, err, errs.ErrForbidden)
			assert.Equal(t, StatusPending, o.Status())
		})
	}
}

func TestUpdateStatusRejectsSkippedStates(t *testing.T) {
	o := newPendingOrder(t)

	err := o.UpdateStatus(StatusPreparing, principal.RoleRestaurantOwner, time.Now().UTC())
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Equal(t, StatusPending, o.Status())
}

func TestUpdateStatusRejectsTransitionsFromTerminal(t *testing.T) {
	o := newPendingOrder(t)
	advance(t, o, StatusDelivered)

	for _, next := range allStatuses() {
		role, _ := RoleAllowedToSet(next)
		err := o.UpdateStatus(next, role, time.Now().UTC())
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition, next.String())
	}
	assert.Equal(t, StatusDelivered, o.Status())
}

func TestCancelPendingOrder(t *testing.T) {
	o := newPendingOrder(t)

	require.NoError(t, o.Cancel())

	assert.Equal(t, StatusCancelled, o.Status())
	assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus())
}

func TestCancelConfirmedOrderConflicts(t *testing.T) {
	o := newPendingOrder(t)
	advance(t, o, StatusConfirmed)

	err := o.Cancel()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Equal(t, StatusConfirmed, o.Status())
}

func TestCancelDeliveredOrderConflicts(t *testing.T) {
	o := newPendingOrder(t)
	advance(t, o, StatusDelivered)

	err := o.Cancel()
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, StatusDelivered, o.Status())
	assert.Equal(t, PaymentStatusCompleted, o.PaymentStatus())
}

func TestAssignDriver(t *testing.T) {
	o := newPendingOrder(t)
	advance(t, o, StatusReadyForPickup)

	driverID := kernel.NewUUID()
	require.NoError(t, o.AssignDriver(driverID))

	require.NotNil(t, o.DriverID())
	assert.True(t, driverID.IsEqual(*o.DriverID()))
	assert.Equal(t, StatusReadyForPickup, o.Status(), "assignment must not advance the status")
}

func TestAssignDriverTwiceConflicts(t *testing.T) {
	o := newPendingOrder(t)
	advance(t, o, StatusReadyForPickup)

	first := kernel.NewUUID()
	require.NoError(t, o.AssignDriver(first))

	err := o.AssignDriver(kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.True(t, first.IsEqual(*o.DriverID()), "loser must not overwrite the winner")
}

func TestAssignDriverRequiresReadyForPickup(t *testing.T) {
	o := newPendingOrder(t)

	err := o.AssignDriver(kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, o.DriverID())
}

func TestSyncPaymentStatus(t *testing.T) {
	o := newPendingOrder(t)

	require.NoError(t, o.SyncPaymentStatus(PaymentStatusFailed))
	assert.Equal(t, PaymentStatusFailed, o.PaymentStatus())

	err := o.SyncPaymentStatus(PaymentStatusUnknown)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestoreOrder(t *testing.T) {
	source := newPendingOrder(t)
	advance(t, source, StatusPickedUp)

	restored, err := RestoreOrder(
		source.ID(), source.CustomerID(), source.RestaurantID(), source.DriverID(),
		source.DeliveryAddress(), source.Items(),
		source.Subtotal(), source.DeliveryFee(), source.Tax(), source.Total(),
		source.Status(), source.PaymentStatus(),
		PricingDetails{
			DeliveryFee:      source.DeliveryFee(),
			DistanceKm:       source.DistanceKm(),
			WeatherCondition: source.WeatherCondition(),
			EtaMinutes:       source.EtaMinutes(),
		},
		source.CreatedAt(), source.PickedUpAt(), source.DeliveredAt(),
	)
	require.NoError(t, err)

	assert.True(t, restored.IsEqual(source))
	assert.Equal(t, StatusPickedUp, restored.Status())
	assert.True(t, restored.Total().IsEqual(source.Total()))
	require.NotNil(t, restored.DriverID())
	assert.True(t, restored.DriverID().IsEqual(*source.DriverID()))
	require.NotNil(t, restored.PickedUpAt())
}

func TestRestoreOrderRejectsUnknownStatus(t *testing.T) {
	_, err := RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		testAddress(t), []Item{mustItem(t, "Margherita", 1, "10.00")},
		kernel.MustMoney("10.00"), kernel.MustMoney("4.00"),
		kernel.MustMoney("0.85"), kernel.MustMoney("14.85"),
		StatusUnknown, PaymentStatusPending,
		PricingDetails{}, time.Now().UTC(), nil, nil,
	)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrderNotConstructed(t *testing.T) {
	var o Order
	assert.ErrorIs(t, o.Validate(), ErrOrderIsNotConstructed)
	assert.ErrorIs(t, o.Cancel(), ErrOrderIsNotConstructed)
}
