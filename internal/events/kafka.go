package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher writes events to topic, keyed by table name so one table's
// changes stay ordered within a partition.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *kafkaPublisher) Publish(ctx context.Context, event SchemaEvent) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Table),
		Value: data,
	})
}

func (k *kafkaPublisher) Close() error {
	return k.writer.Close()
}
