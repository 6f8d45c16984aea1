package http

// Request bodies. Identity never travels in the body; it comes from the
// authentication headers resolved in principal.go.

type orderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,gt=0"`
}

type deliveryAddressRequest struct {
	Street    string   `json:"street" validate:"required"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zip_code"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type createOrderRequest struct {
	RestaurantID    string                 `json:"restaurant_id" validate:"required,uuid"`
	Items           []orderItemRequest     `json:"items"         validate:"required,min=1,dive"`
	DeliveryAddress deliveryAddressRequest `json:"delivery_address"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type processPaymentRequest struct {
	Method string `json:"method" validate:"required"`
}

type refundPaymentRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type driverAvailabilityRequest struct {
	Available bool     `json:"available"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type driverLocationRequest struct {
	Latitude  *float64 `json:"latitude"  validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// Response bodies.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

type processPaymentResponse struct {
	PaymentID string `json:"payment_id"`
}

type openOrderResponse struct {
	ID          string   `json:"id"`
	Street      string   `json:"street"`
	City        string   `json:"city"`
	DeliveryFee string   `json:"delivery_fee"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	EtaMinutes  int      `json:"eta_minutes"`
}

type myOrderResponse struct {
	ID            string `json:"id"`
	RestaurantID  string `json:"restaurant_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Total         string `json:"total"`
	EtaMinutes    int    `json:"eta_minutes"`
	CreatedAt     string `json:"created_at"`
}

type restaurantOrderResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Total         string `json:"total"`
	CreatedAt     string `json:"created_at"`
}

type orderItemResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
}

type orderDetailResponse struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customer_id"`
	RestaurantID  string  `json:"restaurant_id"`
	DriverID      *string `json:"driver_id,omitempty"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`

	Items []orderItemResponse `json:"items"`

	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`

	DistanceKm       *float64 `json:"distance_km,omitempty"`
	WeatherCondition string   `json:"weather_condition,omitempty"`
	EtaMinutes       int      `json:"eta_minutes"`

	CreatedAt   string  `json:"created_at"`
	PickedUpAt  *string `json:"picked_up_at,omitempty"`
	DeliveredAt *string `json:"delivered_at,omitempty"`
}
