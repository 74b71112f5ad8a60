package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// statusQueue carries order status change events to the customer-facing
// order feed.
const statusQueue = "order_status_events"

// OrderStatusEvent is published whenever an order's status changes, whether
// by the payment outcome handler or by an admin.
type OrderStatusEvent struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel, and declares the status
// event queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		statusQueue, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", statusQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", statusQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishOrderStatus publishes a status change event for an order.
func (c *Client) PublishOrderStatus(orderID, status string) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(OrderStatusEvent{
		OrderID:    orderID,
		Status:     status,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	err = c.channel.Publish(
		"",          // exchange: default exchange
		statusQueue, // routing key: the queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}

	log.Printf(" [x] Published status event: %s", body)
	return nil
}

// ConsumeOrderStatusEvents delivers status events to the handler. Messages
// are auto-acknowledged on delivery, so consumers see each event at most
// once and in no guaranteed order relative to other state reads; a handler
// error loses the event rather than redelivering it.
func (c *Client) ConsumeOrderStatusEvents(handler func(event OrderStatusEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		statusQueue, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		true,       // auto-ack: at-most-once delivery
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for order status events.")

	go func() {
		for msg := range msgs {
			var event OrderStatusEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Printf("Error decoding status event %d: %v", msg.DeliveryTag, err)
				continue
			}
			if err := handler(event); err != nil {
				// Auto-ack already consumed the message; the event is gone.
				log.Printf("Error handling status event for order %s: %v", event.OrderID, err)
			}
		}
	}()

	return nil
}
