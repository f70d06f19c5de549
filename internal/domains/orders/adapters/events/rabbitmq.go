package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

// DefaultExchange is the topic exchange kitchen consumers bind to.
const DefaultExchange = "kitchen_orders"

var _ ports.EventPublisher = (*RabbitPublisher)(nil)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher sends order events to a RabbitMQ topic exchange as JSON.
type RabbitPublisher struct {
	mu       sync.Mutex
	channel  Channel
	exchange string
	logger   *slog.Logger
	timeout  time.Duration
}

type Option func(*RabbitPublisher)

func WithExchange(name string) Option {
	return func(p *RabbitPublisher) {
		if name != "" {
			p.exchange = name
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *RabbitPublisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewRabbitPublisher declares the exchange on ch and returns a publisher bound to it.
func NewRabbitPublisher(ch Channel, opts ...Option) (*RabbitPublisher, error) {
	if ch == nil {
		return nil, errors.New("rabbitmq channel is nil")
	}
	p := &RabbitPublisher{
		channel:  ch,
		exchange: DefaultExchange,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	return p, nil
}

// Dial connects to url, opens a channel and returns a publisher plus a cleanup func.
func Dial(url string, opts ...Option) (*RabbitPublisher, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, func() {}, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, func() {}, err
	}
	publisher, err := NewRabbitPublisher(ch, opts...)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, func() {}, err
	}
	return publisher, func() {
		_ = ch.Close()
		_ = conn.Close()
	}, nil
}

// Message is the JSON body kitchen consumers receive.
type Message struct {
	EventID     string        `json:"event_id"`
	Kind        string        `json:"kind"`
	OccurredAt  time.Time     `json:"occurred_at"`
	OrderID     int64         `json:"order_id"`
	TableNumber string        `json:"table_number,omitempty"`
	Status      string        `json:"status"`
	Items       []MessageLine `json:"items"`
	CreatedAt   time.Time     `json:"created_at"`
}

type MessageLine struct {
	ID  int64 `json:"id"`
	Qty int   `json:"qty"`
}

// Publish sends the event. Failures are logged and returned; callers treat
// delivery as best effort.
func (p *RabbitPublisher) Publish(ctx context.Context, event ports.Event) error {
	if event.Order == nil {
		return errors.New("event has no order")
	}
	body, err := json.Marshal(toMessage(event))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	key := RoutingKey(event)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Kind),
		Body:         body,
	})
	p.mu.Unlock()
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish order event",
			slog.String("exchange", p.exchange),
			slog.String("routing_key", key),
			slog.Int64("order.id", event.Order.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("publish order event: %w", err)
	}
	p.logger.LogAttrs(ctx, slog.LevelDebug, "order event published",
		slog.String("routing_key", key), slog.Int64("order.id", event.Order.ID))
	return nil
}

// RoutingKey is order.placed for new orders and order.status.<status> for changes.
func RoutingKey(event ports.Event) string {
	if event.Kind == ports.EventStatusChanged && event.Order != nil {
		return string(ports.EventStatusChanged) + "." + string(event.Order.Status)
	}
	return string(event.Kind)
}

func toMessage(event ports.Event) Message {
	order := event.Order
	items := make([]MessageLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, MessageLine{ID: line.ItemID, Qty: line.Qty})
	}
	status := order.Status
	if status == "" {
		status = domain.StatusPending
	}
	return Message{
		EventID:     event.ID,
		Kind:        string(event.Kind),
		OccurredAt:  event.OccurredAt.UTC(),
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Status:      string(status),
		Items:       items,
		CreatedAt:   order.CreatedAt.UTC(),
	}
}

// LogPublisher writes events to the logger. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event ports.Event) error {
	if event.Order == nil {
		return nil
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "kitchen event",
		slog.String("routing_key", RoutingKey(event)),
		slog.Int64("order.id", event.Order.ID),
		slog.String("status", string(event.Order.Status)))
	return nil
}

var _ ports.EventPublisher = (*LogPublisher)(nil)
