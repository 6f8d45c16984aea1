package ports

import "context"

// StatusChangeEvent notifies interested parties that an order moved to a new
// lifecycle state.
type StatusChangeEvent struct {
	OrderID   string `json:"order_id"`
	NewStatus string `json:"new_status"`
	Message   string `json:"message"`
}

// NotificationPublisher pushes order status events onto the message broker.
// Publishing is best effort from the caller's perspective: a failed publish is
// logged, never rolled into the business transaction's outcome.
type NotificationPublisher interface {
	PublishStatusChange(ctx context.Context, event StatusChangeEvent) error
}
