// Package rabbitmq publishes order status notifications to a topic exchange.
// Customers, restaurants and drivers subscribe with routing key patterns like
// "orders.status.*" or "orders.status.DELIVERED".
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/streadway/amqp"
)

const exchangeName = "marketplace.orders"

// Notifier implements NotificationPublisher on top of a RabbitMQ topic
// exchange. Messages are published persistent so broker restarts do not
// drop in-flight notifications.
type Notifier struct {
	url    string
	logger *slog.Logger

	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
}

// NewNotifier connects to the broker and declares the exchange.
func NewNotifier(url string, logger *slog.Logger) (*Notifier, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("amqp url")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	n := &Notifier{
		url:    url,
		logger: logger.With("component", "rabbitmq_notifier"),
	}
	if err := n.connect(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifier) connect() error {
	connection, err := amqp.Dial(n.url)
	if err != nil {
		return errs.NewUpstreamFailureError("rabbitmq", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return errs.NewUpstreamFailureError("rabbitmq", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		connection.Close()
		return errs.NewUpstreamFailureError("rabbitmq", err)
	}

	n.connection = connection
	n.channel = channel
	return nil
}

// newPublishing builds the routing key and persistent JSON message for one
// status change event.
func newPublishing(event ports.StatusChangeEvent) (string, amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", amqp.Publishing{}, err
	}

	routingKey := fmt.Sprintf("orders.status.%s", event.NewStatus)
	return routingKey, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"order_id":   event.OrderID,
			"new_status": event.NewStatus,
		},
	}, nil
}

// PublishStatusChange publishes one status change event. The connection is
// re-dialed once when the broker dropped it since the last publish.
func (n *Notifier) PublishStatusChange(ctx context.Context, event ports.StatusChangeEvent) error {
	routingKey, publishing, err := newPublishing(event)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.connection == nil || n.connection.IsClosed() {
		n.logger.WarnContext(ctx, "broker connection lost, reconnecting")
		if err = n.connect(); err != nil {
			return err
		}
	}

	err = n.channel.Publish(
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		publishing,
	)
	if err != nil {
		return errs.NewUpstreamFailureError("rabbitmq", err)
	}

	n.logger.DebugContext(ctx, "status change published",
		"routing_key", routingKey, "order_id", event.OrderID)
	return nil
}

// Close shuts down the channel and connection.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var closeErr error
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			closeErr = err
		}
		n.channel = nil
	}
	if n.connection != nil {
		if err := n.connection.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
		n.connection = nil
	}
	return closeErr
}
