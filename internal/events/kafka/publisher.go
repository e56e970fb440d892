// Package kafka publishes ledger events to a Kafka topic, for deployments
// that already run Kafka instead of RabbitMQ.
package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"finboard/internal/events"
	"finboard/internal/log"
)

type Publisher struct {
	writer *kafka.Writer
	log    *log.Logger
}

func NewPublisher(brokers []string, topic string, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		log: logger.WithComponent(log.ComponentEvents),
	}
}

func (p *Publisher) PublishLedgerEvent(ctx context.Context, event *events.LedgerEvent) error {
	data, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	p.log.InfoContext(ctx, "ledger event published",
		log.FieldOperation, event.Op,
		log.FieldTxID, event.ID,
		log.FieldTopic, p.writer.Topic)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
