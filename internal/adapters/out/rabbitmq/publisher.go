// Package rabbitmq publishes order events to a RabbitMQ fanout exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cafeteria/internal/core/domain/model/order"

	"github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "order_status"

	statusChangedType = "OrderStatusChanged"
	publishTimeout    = 5 * time.Second
)

// channel is the part of *amqp091.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements ports.OrderEventPublisher. An AMQP channel must not be used by
// several goroutines at once, so publishes are serialised.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	ch       channel
	exchange string
	logger   *slog.Logger
}

// Dial connects to url and declares a durable fanout exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	p, err := newPublisher(ch, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger *slog.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq_publisher", "exchange", exchange),
	}, nil
}

type statusChangedMessage struct {
	OrderID    string      `json:"orderId"`
	UserID     string      `json:"userId"`
	WaiterID   *string     `json:"waiterId,omitempty"`
	Status     string      `json:"status"`
	TotalCost  json.Number `json:"totalCost"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func toMessage(event order.StatusChanged) statusChangedMessage {
	msg := statusChangedMessage{
		OrderID:    event.OrderID.String(),
		UserID:     event.UserID.String(),
		Status:     event.Status.String(),
		TotalCost:  json.Number(event.TotalCost.String()),
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.WaiterID != nil {
		id := event.WaiterID.String()
		msg.WaiterID = &id
	}
	return msg
}

// PublishStatusChanged sends one persistent JSON message.
func (p *Publisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	body, err := json.Marshal(toMessage(event))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.OrderID.String() + ":" + event.Status.String(),
			Type:         statusChangedType,
			Timestamp:    event.OccurredAt.UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}

	p.logger.DebugContext(ctx, "order event published",
		"order_id", event.OrderID.String(),
		"status", event.Status.String(),
	)
	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if connErr := p.conn.Close(); err == nil {
			err = connErr
		}
	}
	return err
}
