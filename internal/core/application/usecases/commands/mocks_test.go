package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOpenForPickup(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPendingCreatedBefore(
	ctx context.Context, cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AssignDriver(ctx context.Context, orderID, driverID kernel.UUID) error {
	args := m.Called(ctx, orderID, driverID)
	return args.Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetRestaurant(
	ctx context.Context, id kernel.UUID,
) (ports.RestaurantSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.RestaurantSnapshot), args.Error(1)
}

func (m *MockCatalogRepository) GetMenuItems(
	ctx context.Context, ids []kernel.UUID,
) ([]ports.MenuItemSnapshot, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.MenuItemSnapshot), args.Error(1)
}

type MockWeatherService struct{ mock.Mock }

func (m *MockWeatherService) Current(
	ctx context.Context, point kernel.GeoPoint,
) (ports.WeatherConditions, error) {
	args := m.Called(ctx, point)
	return args.Get(0).(ports.WeatherConditions), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(
	ctx context.Context, amount kernel.Money, method payment.Method,
) (ports.ChargeResult, error) {
	args := m.Called(ctx, amount, method)
	return args.Get(0).(ports.ChargeResult), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, transactionID string, amount kernel.Money) error {
	args := m.Called(ctx, transactionID, amount)
	return args.Error(0)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) PublishStatusChange(
	ctx context.Context, event ports.StatusChangeEvent,
) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUoW satisfies every narrow unit of work interface in this package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockOrderPaymentUoWFactory struct{ mock.Mock }

func (m *MockOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderPaymentUoW)
}

type MockOrderDriverUoWFactory struct{ mock.Mock }

func (m *MockOrderDriverUoWFactory) Create() commands.OrderDriverUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderDriverUoW)
}

type MockOrderPaymentDriverUoWFactory struct{ mock.Mock }

func (m *MockOrderPaymentDriverUoWFactory) Create() commands.OrderPaymentDriverUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderPaymentDriverUoW)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGuard(t *testing.T, catalog ports.CatalogRepository) *auth.Guard {
	t.Helper()
	g, err := auth.NewGuard(catalog)
	require.NoError(t, err)
	return g
}

func testPrincipal(t *testing.T, id kernel.UUID, role principal.Role) principal.Principal {
	t.Helper()
	p, err := principal.New(id, "someone@example.com", role)
	require.NoError(t, err)
	return p
}

func testOrder(t *testing.T, customerID, restaurantID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Pad Thai", 2, kernel.MustMoney("11.00"))
	require.NoError(t, err)
	address, err := order.NewAddress("123 Market St", "San Francisco", "CA", "94103", nil)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, restaurantID, address,
		[]order.Item{item},
		order.PricingDetails{DeliveryFee: kernel.MustMoney("4.00"), EtaMinutes: 45},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func pendingPaymentFor(t *testing.T, o *order.Order) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), o.ID(), o.Total(), o.CreatedAt())
	require.NoError(t, err)
	return p
}

func completedPaymentFor(t *testing.T, o *order.Order, transactionID string) *payment.Payment {
	t.Helper()
	p := pendingPaymentFor(t, o)
	require.NoError(t, p.MarkProcessing(payment.MethodCreditCard))
	require.NoError(t, p.MarkCompleted(transactionID, time.Now().UTC()))
	return p
}

func advanceOrder(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	path := []order.Status{
		order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup,
		order.StatusPickedUp, order.StatusInTransit, order.StatusDelivered,
	}
	now := time.Now().UTC()
	for _, next := range path {
		role, ok := order.RoleAllowedToSet(next)
		require.True(t, ok)
		if next == order.StatusPickedUp && o.DriverID() == nil {
			require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		}
		require.NoError(t, o.UpdateStatus(next, role, now))
		if next == target {
			return
		}
	}
	t.Fatalf("unreachable target status %s", target)
}
