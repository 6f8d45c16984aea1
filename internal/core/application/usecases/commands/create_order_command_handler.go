package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/samber/lo"
)

// CreateOrderCommandHandler places a new order: it snapshots catalog prices,
// prices the delivery, and persists the order in Pending status together with
// a Pending payment for the order's total, in one transaction.
//
// Delivery pricing is dynamic when both the restaurant and the drop-off
// address carry coordinates; otherwise the restaurant's static fee applies.
// Weather is looked up best effort: an unreachable weather source prices the
// order as if conditions were clear rather than failing the placement.
type CreateOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	catalog    ports.CatalogRepository
	weather    ports.WeatherService
	pricing    services.PricingEngine
	publisher  ports.NotificationPublisher
	authGuard  *auth.Guard
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	catalog ports.CatalogRepository,
	weather ports.WeatherService,
	pricing services.PricingEngine,
	publisher ports.NotificationPublisher,
	authGuard *auth.Guard,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		weather:    weather,
		pricing:    pricing,
		publisher:  publisher,
		authGuard:  authGuard,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order placement command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.authGuard.RequireRole(cmd.Actor(), principal.RoleCustomer); err != nil {
		return err
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}
	if !restaurant.IsOpen {
		return errs.NewConflictError("restaurant is not accepting orders")
	}

	items, err := h.snapshotItems(ctx, cmd)
	if err != nil {
		return err
	}

	address, dropoff, err := buildAddress(cmd.Address())
	if err != nil {
		return err
	}

	pricing := h.priceDelivery(ctx, restaurant, dropoff)

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.Actor().SubjectID(), cmd.RestaurantID(),
		address, items, pricing, now,
	)
	if err != nil {
		return err
	}

	newPayment, err := payment.NewPayment(kernel.NewUUID(), newOrder.ID(), newOrder.Total(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}
	if err = uow.PaymentRepository().Add(ctx, newPayment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishStatusChange(ctx, newOrder, "order placed")
	return nil
}

// snapshotItems resolves the requested lines against the catalog and freezes
// current prices onto order items.
func (h *CreateOrderCommandHandler) snapshotItems(
	ctx context.Context, cmd CreateOrderCommand,
) ([]order.Item, error) {
	requested := cmd.Items()
	ids := lo.Map(requested, func(item OrderItemInput, _ int) kernel.UUID {
		return item.MenuItemID
	})

	snapshots, err := h.catalog.GetMenuItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(snapshots, func(s ports.MenuItemSnapshot) kernel.UUID {
		return s.ID
	})

	items := make([]order.Item, 0, len(requested))
	for _, input := range requested {
		snapshot, ok := byID[input.MenuItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menu item", input.MenuItemID)
		}
		if !snapshot.RestaurantID.IsEqual(cmd.RestaurantID()) {
			return nil, errs.NewValueIsInvalidError("menu item restaurant")
		}
		if !snapshot.IsAvailable {
			return nil, errs.NewConflictError("menu item " + snapshot.Name + " is unavailable")
		}

		item, err := order.NewItem(snapshot.ID, snapshot.Name, input.Quantity, snapshot.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// priceDelivery computes the fee and ETA for the order. Dynamic pricing needs
// coordinates on both ends; the weather lookup never fails the order.
func (h *CreateOrderCommandHandler) priceDelivery(
	ctx context.Context,
	restaurant ports.RestaurantSnapshot,
	dropoff *kernel.GeoPoint,
) order.PricingDetails {
	now := time.Now().UTC()

	var distanceKm *float64
	conditions := ports.WeatherConditions{Label: "CLEAR"}

	if restaurant.Location != nil && dropoff != nil {
		d := restaurant.Location.DistanceKmTo(*dropoff)
		distanceKm = &d

		current, err := h.weather.Current(ctx, *dropoff)
		if err != nil {
			h.logger.WarnContext(ctx, "weather lookup failed, pricing as clear", "error", err)
		} else {
			conditions = current
		}
	}

	quote := h.pricing.Quote(distanceKm, restaurant.StaticDeliveryFee, now, conditions.Bad)

	return order.PricingDetails{
		DeliveryFee:         quote.Fee,
		DistanceKm:          distanceKm,
		WeatherCondition:    conditions.Label,
		BadWeatherSurcharge: quote.WeatherApplied,
		PeakHourSurcharge:   quote.PeakApplied,
		EtaMinutes:          quote.EtaMinutes,
	}
}

func (h *CreateOrderCommandHandler) publishStatusChange(ctx context.Context, o *order.Order, message string) {
	event := ports.StatusChangeEvent{
		OrderID:   o.ID().String(),
		NewStatus: o.Status().String(),
		Message:   message,
	}
	if err := h.publisher.PublishStatusChange(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "status change publish failed",
			"order_id", event.OrderID, "status", event.NewStatus, "error", err)
	}
}

// buildAddress converts the raw address input into the order's address
// snapshot, returning the geo point separately for distance computation.
func buildAddress(input DeliveryAddressInput) (order.Address, *kernel.GeoPoint, error) {
	var point *kernel.GeoPoint
	if input.Latitude != nil && input.Longitude != nil {
		p, err := kernel.NewGeoPoint(*input.Latitude, *input.Longitude)
		if err != nil {
			return order.Address{}, nil, err
		}
		point = &p
	}

	address, err := order.NewAddress(input.Street, input.City, input.State, input.ZipCode, point)
	if err != nil {
		return order.Address{}, nil, err
	}
	return address, point, nil
}
