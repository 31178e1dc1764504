// Package kafka publishes order events to a Kafka topic.
//
// Publishing is best effort. An event that cannot be written is kept in a
// bounded in-process buffer and retried later by RetryPending; when the buffer
// is full the oldest event is dropped and logged.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// DefaultMaxPending bounds the retry buffer.
const DefaultMaxPending = 1000

// ErrNoBrokers is returned by NewWriter when no broker address is configured.
var ErrNoBrokers = errors.New("no kafka brokers configured")

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ParseBrokers splits a comma separated broker list, ignoring blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter builds a writer for topic. Messages are keyed by order id and the
// hash balancer keeps the events of one order on one partition, in order.
func NewWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}, nil
}

// eventPayload is the JSON body of a published event.
type eventPayload struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  string    `json:"customer_id"`
	ActorID     string    `json:"actor_id"`
	Status      string    `json:"status"`
	Total       string    `json:"total"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func encode(event ports.OrderEvent) (kafka.Message, error) {
	data, err := json.Marshal(eventPayload{
		EventID:     event.ID.String(),
		Type:        string(event.Type),
		OrderID:     event.OrderID.String(),
		OrderNumber: event.Number,
		CustomerID:  event.CustomerID.String(),
		ActorID:     event.ActorID.String(),
		Status:      event.Status.String(),
		Total:       event.Total.String(),
		OccurredAt:  event.OccurredAt.UTC(),
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: data,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

// Publisher implements ports.Notifier on top of a MessageWriter.
type Publisher struct {
	writer     MessageWriter
	metrics    *metrics.Metrics
	logger     *slog.Logger
	maxPending int

	mu      sync.Mutex
	pending []ports.OrderEvent
}

func NewPublisher(writer MessageWriter, m *metrics.Metrics, logger *slog.Logger, maxPending int) *Publisher {
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &Publisher{
		writer:     writer,
		metrics:    m,
		logger:     logger.With("component", "kafka_publisher"),
		maxPending: maxPending,
	}
}

// Notify writes event to the topic. On failure the event is buffered for
// RetryPending and an UpstreamUnavailableError is returned.
func (p *Publisher) Notify(ctx context.Context, event ports.OrderEvent) error {
	if err := p.write(ctx, event); err != nil {
		p.enqueue(event)
		return err
	}
	return nil
}

// RetryPending tries to deliver every buffered event once, oldest first.
// Events that fail again stay buffered. It returns how many were delivered.
func (p *Publisher) RetryPending(ctx context.Context) (int, error) {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	sent := 0
	var failed []ports.OrderEvent
	var lastErr error
	for i, event := range batch {
		if ctx.Err() != nil {
			failed = append(failed, batch[i:]...)
			lastErr = ctx.Err()
			break
		}
		if err := p.write(ctx, event); err != nil {
			failed = append(failed, event)
			lastErr = err
			continue
		}
		sent++
	}

	if len(failed) > 0 {
		p.mu.Lock()
		p.pending = append(failed, p.pending...)
		p.trimLocked()
		p.mu.Unlock()
	}
	p.updatePending()

	return sent, lastErr
}

// Pending returns the number of buffered events.
func (p *Publisher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Close closes the writer. Events still buffered are lost and their count is logged.
func (p *Publisher) Close() error {
	if n := p.Pending(); n > 0 {
		p.logger.Warn("closing with undelivered order events", "pending", n)
	}
	return p.writer.Close()
}

func (p *Publisher) write(ctx context.Context, event ports.OrderEvent) error {
	msg, err := encode(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.NotificationsFailed.WithLabelValues(string(event.Type)).Inc()
		return errs.NewUpstreamUnavailableError("kafka", err)
	}

	p.metrics.NotificationsSent.WithLabelValues(string(event.Type)).Inc()
	return nil
}

func (p *Publisher) enqueue(event ports.OrderEvent) {
	p.mu.Lock()
	p.pending = append(p.pending, event)
	p.trimLocked()
	p.mu.Unlock()
	p.updatePending()
}

func (p *Publisher) trimLocked() {
	if overflow := len(p.pending) - p.maxPending; overflow > 0 {
		for _, dropped := range p.pending[:overflow] {
			p.logger.Error("dropping undelivered order event",
				"event_id", dropped.ID.String(),
				"order_id", dropped.OrderID.String(),
				"type", dropped.Type,
			)
		}
		p.pending = append([]ports.OrderEvent(nil), p.pending[overflow:]...)
	}
}

func (p *Publisher) updatePending() {
	p.metrics.PendingEvents.Set(float64(p.Pending()))
}
