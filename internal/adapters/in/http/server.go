// Package http exposes the marketplace over a REST API. Handlers translate
// between transport DTOs and application commands and queries; all business
// rules stay in the core.
package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

var validate = validator.New()

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler           commands.CreateOrderCommandHandler
	updateOrderStatusHandler     commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler           commands.CancelOrderCommandHandler
	acceptOrderHandler           commands.AcceptOrderCommandHandler
	processPaymentHandler        commands.ProcessPaymentCommandHandler
	refundPaymentHandler         commands.RefundPaymentCommandHandler
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler
	updateDriverLocationHandler  commands.UpdateDriverLocationCommandHandler

	getOpenOrdersHandler        queries.GetOpenOrdersQueryHandler
	getOrderHandler             queries.GetOrderQueryHandler
	getMyOrdersHandler          queries.GetMyOrdersQueryHandler
	getRestaurantOrdersHandler  queries.GetRestaurantOrdersQueryHandler
}

// NewServer creates an HTTP server backed by the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	refundPaymentHandler commands.RefundPaymentCommandHandler,
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler,
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getMyOrdersHandler queries.GetMyOrdersQueryHandler,
	getRestaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		updateOrderStatusHandler:     updateOrderStatusHandler,
		cancelOrderHandler:           cancelOrderHandler,
		acceptOrderHandler:           acceptOrderHandler,
		processPaymentHandler:        processPaymentHandler,
		refundPaymentHandler:         refundPaymentHandler,
		setDriverAvailabilityHandler: setDriverAvailabilityHandler,
		updateDriverLocationHandler:  updateDriverLocationHandler,
		getOpenOrdersHandler:         getOpenOrdersHandler,
		getOrderHandler:              getOrderHandler,
		getMyOrdersHandler:           getMyOrdersHandler,
		getRestaurantOrdersHandler:   getRestaurantOrdersHandler,
	}
}

// RegisterRoutes wires the API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/open", s.GetOpenOrders)
	api.GET("/orders/my", s.GetMyOrders)
	api.GET("/restaurants/:id/orders", s.GetRestaurantOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/payment", s.ProcessPayment)
	api.POST("/orders/:id/refund", s.RefundPayment)
	api.PUT("/drivers/availability", s.SetDriverAvailability)
	api.PUT("/drivers/location", s.UpdateDriverLocation)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req createOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = validate.Struct(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, itemErr := kernel.UUIDFromString(item.MenuItemID)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		items = append(items, commands.OrderItemInput{
			MenuItemID: menuItemID,
			Quantity:   item.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor, restaurantID, items,
		commands.DeliveryAddressInput{
			Street:    req.DeliveryAddress.Street,
			City:      req.DeliveryAddress.City,
			State:     req.DeliveryAddress.State,
			ZipCode:   req.DeliveryAddress.ZipCode,
			Latitude:  req.DeliveryAddress.Latitude,
			Longitude: req.DeliveryAddress.Longitude,
		})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

// GetOpenOrders handles GET /api/v1/orders/open - the claimable feed for drivers.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOpenOrdersQuery(actor)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := lo.Map(orders, func(o queries.GetOpenOrdersQueryResponse, _ int) openOrderResponse {
		return openOrderResponse{
			ID:          o.ID.String(),
			Street:      o.Street,
			City:        o.City,
			DeliveryFee: o.DeliveryFee.StringFixed(2),
			DistanceKm:  o.DistanceKm,
			EtaMinutes:  o.EtaMinutes,
		}
	})

	return ctx.JSON(http.StatusOK, response)
}

// GetMyOrders handles GET /api/v1/orders/my - the customer's order history.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetMyOrdersQuery(actor)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getMyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := lo.Map(orders, func(o queries.GetMyOrdersQueryResponse, _ int) myOrderResponse {
		return myOrderResponse{
			ID:            o.ID.String(),
			RestaurantID:  o.RestaurantID.String(),
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			Total:         o.Total.StringFixed(2),
			EtaMinutes:    o.EtaMinutes,
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		}
	})

	return ctx.JSON(http.StatusOK, response)
}

// GetRestaurantOrders handles GET /api/v1/restaurants/:id/orders.
func (s *Server) GetRestaurantOrders(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRestaurantOrdersQuery(restaurantID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getRestaurantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := lo.Map(orders, func(o queries.GetRestaurantOrdersQueryResponse, _ int) restaurantOrderResponse {
		return restaurantOrderResponse{
			ID:            o.ID.String(),
			CustomerID:    o.CustomerID.String(),
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			Total:         o.Total.StringFixed(2),
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		}
	})

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailResponse(detail))
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = validate.Struct(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	next, err := order.ToStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actor, next)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - a driver claiming an order.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req processPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = validate.Struct(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	method, err := payment.ToMethod(req.Method)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, actor, method)
	if err != nil {
		return writeError(ctx, err)
	}

	paymentID, err := s.processPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, processPaymentResponse{PaymentID: paymentID.String()})
}

// RefundPayment handles POST /api/v1/orders/:id/refund.
func (s *Server) RefundPayment(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req refundPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = validate.Struct(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRefundPaymentCommand(orderID, actor, amount)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.refundPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDriverAvailability handles PUT /api/v1/drivers/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req driverAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(actor, req.Available, req.Latitude, req.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setDriverAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDriverLocation handles PUT /api/v1/drivers/location.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	actor, err := resolvePrincipal(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req driverLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = validate.Struct(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}
	if req.Latitude == nil || req.Longitude == nil {
		return writeError(ctx, errs.NewValueIsRequiredError("location"))
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(actor, *req.Latitude, *req.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateDriverLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrderDetailResponse(detail queries.GetOrderQueryResponse) orderDetailResponse {
	var driverID *string
	if detail.DriverID != nil {
		s := detail.DriverID.String()
		driverID = &s
	}

	items := lo.Map(detail.Items, func(item queries.GetOrderQueryItemResponse, _ int) orderItemResponse {
		return orderItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
		}
	})

	return orderDetailResponse{
		ID:               detail.ID.String(),
		CustomerID:       detail.CustomerID.String(),
		RestaurantID:     detail.RestaurantID.String(),
		DriverID:         driverID,
		Status:           detail.Status,
		PaymentStatus:    detail.PaymentStatus,
		Street:           detail.Street,
		City:             detail.City,
		State:            detail.State,
		ZipCode:          detail.ZipCode,
		Items:            items,
		Subtotal:         detail.Subtotal.StringFixed(2),
		DeliveryFee:      detail.DeliveryFee.StringFixed(2),
		Tax:              detail.Tax.StringFixed(2),
		Total:            detail.Total.StringFixed(2),
		DistanceKm:       detail.DistanceKm,
		WeatherCondition: detail.WeatherCondition,
		EtaMinutes:       detail.EtaMinutes,
		CreatedAt:        detail.CreatedAt.Format(time.RFC3339),
		PickedUpAt:       formatTimePtr(detail.PickedUpAt),
		DeliveredAt:      formatTimePtr(detail.DeliveredAt),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
