package cmd

import (
	"log/slog"
	"time"

	"marketplace/internal/adapters/out/paymentsim"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/weathersim"
	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into application handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	catalog   ports.CatalogRepository
	weather   ports.WeatherService
	gateway   ports.PaymentGateway
	publisher ports.NotificationPublisher

	pricing   services.PricingEngine
	authGuard *auth.Guard
	logger    *slog.Logger
}

// NewCompositionRoot builds the object graph shared by the HTTP server and
// the background jobs.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	catalog := catalogrepo.NewGormCatalogRepository(gormDB)

	authGuard, err := auth.NewGuard(catalog)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalog,
		weather:    weathersim.NewService(config.WeatherSeed),
		gateway:    paymentsim.NewGateway(config.PaymentSeed),
		publisher:  publisher,
		pricing:    services.NewPricingEngine(),
		authGuard:  authGuard,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f, c.catalog, c.weather, c.pricing, c.publisher, c.authGuard, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderPaymentDriverUoWFactory = FuncOrderPaymentDriverUoWFactory(func() commands.OrderPaymentDriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(
		f, c.pricing, c.gateway, c.publisher, c.authGuard, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(
		f, c.gateway, c.publisher, c.authGuard, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderDriverUoWFactory = FuncOrderDriverUoWFactory(func() commands.OrderDriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.authGuard)
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessPaymentCommandHandler(f, c.gateway, c.authGuard)
}

func (c *CompositionRoot) CreateRefundPaymentCommandHandler() commands.RefundPaymentCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefundPaymentCommandHandler(f, c.gateway, c.authGuard)
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverAvailabilityCommandHandler(f, c.authGuard)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f, c.authGuard)
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpirePendingOrdersCommandHandler(f, c.gateway, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB, c.authGuard)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.authGuard)
}

func (c *CompositionRoot) CreateGetMyOrdersQueryHandler() queries.GetMyOrdersQueryHandler {
	return queries.NewGetMyOrdersQueryHandler(c.gormDB, c.authGuard)
}

func (c *CompositionRoot) CreateGetRestaurantOrdersQueryHandler() queries.GetRestaurantOrdersQueryHandler {
	return queries.NewGetRestaurantOrdersQueryHandler(c.gormDB, c.authGuard)
}

// CreatePendingOrderExpiryJob builds the scheduled sweep for stale orders.
func (c *CompositionRoot) CreatePendingOrderExpiryJob(ttl time.Duration) *jobs.PendingOrderExpiryJob {
	return jobs.NewPendingOrderExpiryJob(c.CreateExpirePendingOrdersCommandHandler(), ttl, c.logger)
}

// Func adapters narrow the concrete unit of work factory to the interfaces
// each handler asks for.

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOrderPaymentUoWFactory func() commands.OrderPaymentUoW

func (f FuncOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return f()
}

type FuncOrderDriverUoWFactory func() commands.OrderDriverUoW

func (f FuncOrderDriverUoWFactory) Create() commands.OrderDriverUoW {
	return f()
}

type FuncOrderPaymentDriverUoWFactory func() commands.OrderPaymentDriverUoW

func (f FuncOrderPaymentDriverUoWFactory) Create() commands.OrderPaymentDriverUoW {
	return f()
}
