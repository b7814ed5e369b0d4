package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// AMQPCollector publishes events to a durable RabbitMQ queue.
type AMQPCollector struct {
	conn  *amqp.Connection
	queue string

	mu sync.Mutex // one publisher per channel
	ch *amqp.Channel
}

var _ ports.Collector = (*AMQPCollector)(nil)

// NewAMQPCollector dials url and declares queue.
func NewAMQPCollector(url, queue string) (*AMQPCollector, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp declare %s: %w", queue, err)
	}
	return &AMQPCollector{conn: conn, ch: ch, queue: q.Name}, nil
}

func (c *AMQPCollector) Name() string { return "amqp" }

func (c *AMQPCollector) Collect(ctx context.Context, event domain.TagEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.ch.PublishWithContext(ctx,
		"",
		c.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Type:        event.Name,
			Timestamp:   event.Timestamp,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp publish %s: %w", event.Name, err)
	}
	return nil
}

func (c *AMQPCollector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ch.Close(); err != nil {
		_ = c.conn.Close()
		return err
	}
	return c.conn.Close()
}
