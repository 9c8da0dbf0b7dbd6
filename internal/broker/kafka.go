package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits stock-change events after the ledger commit.
type Publisher interface {
	PublishStockChanged(ctx context.Context, event *StockChangedEvent) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher builds an async writer: WriteMessages only enqueues, and
// delivery errors are reported through the completion callback.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("failed to deliver stock events", zap.Int("count", len(messages)), zap.Error(err))
			}
		},
	}

	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) PublishStockChanged(ctx context.Context, event *StockChangedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key()),
		Value: eventBytes,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.log.Debug("published stock event", zap.String("key", event.Key()), zap.String("event_id", event.EventID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when KAFKA_BROKERS is not set.
type NopPublisher struct{}

func (NopPublisher) PublishStockChanged(context.Context, *StockChangedEvent) error { return nil }
func (NopPublisher) Close() error                                                 { return nil }
