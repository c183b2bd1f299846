package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes request events to a topic keyed by trainer id, so
// one trainer's events stay ordered within a partition.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteBackoffMin:        100 * time.Millisecond,
		WriteBackoffMax:        time.Second,
	}
	logger.Info("kafka publisher created", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return &KafkaPublisher{writer: writer, topic: topic, timeout: 5 * time.Second, logger: logger}
}

func (p *KafkaPublisher) Notify(ctx context.Context, event RequestEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal request event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.TrainerID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Debug("request event published",
		zap.String("topic", p.topic),
		zap.String("type", string(event.Type)),
		zap.String("request_id", event.RequestID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
