package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// KafkaCollector publishes events to a Kafka topic keyed by user id.
type KafkaCollector struct {
	writer *kafka.Writer
}

var _ ports.Collector = (*KafkaCollector)(nil)

func NewKafkaCollector(topic string, brokers ...string) *KafkaCollector {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaCollector{writer: w}
}

func (c *KafkaCollector) Name() string { return "kafka" }

func (c *KafkaCollector) Collect(ctx context.Context, event domain.TagEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.UserID), // per-shopper ordering within a partition
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Name)},
		},
	}
	if err := c.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", event.Name, err)
	}
	return nil
}

func (c *KafkaCollector) Close() error {
	return c.writer.Close()
}
