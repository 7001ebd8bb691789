package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	DefaultTopic     = "storefront-state"
	eventTypeChanged = "storefront.state_changed"
)

// MessageWriter is the part of *kafka.Writer the notifier needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier forwards changes to a Kafka topic. Publishing is best effort:
// failures are logged and a circuit breaker stops hammering a dead broker.
type KafkaNotifier struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	timeout time.Duration
	logger  *zap.Logger
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaNotifier(writer MessageWriter, logger *zap.Logger) *KafkaNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "kafka-notifier",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &KafkaNotifier{
		writer:  writer,
		breaker: breaker,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

// Handle is a Bus handler.
func (n *KafkaNotifier) Handle(ctx context.Context, c Change) {
	if err := n.publish(ctx, c); err != nil {
		n.logger.Warn("failed to publish state change",
			zap.Uint64("seq", c.Seq),
			zap.String("action", c.Action),
			zap.Error(err))
	}
}

func (n *KafkaNotifier) publish(ctx context.Context, c Change) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(c.Action),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventTypeChanged)},
		},
	}

	_, err = n.breaker.Execute(func() (struct{}, error) {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()
		return struct{}{}, n.writer.WriteMessages(writeCtx, msg)
	})
	return err
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
