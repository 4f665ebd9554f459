package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives console audit events.
const DefaultTopic = "console.audit"

const defaultBuffer = 256

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues events and writes them to a topic from a background
// loop. Events are keyed by actor so one operator's trail stays ordered.
type KafkaPublisher struct {
	w      messageWriter
	logger *slog.Logger
	inbox  chan kafka.Message
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// KafkaOption configures the publisher.
type KafkaOption func(*KafkaPublisher)

// WithKafkaLogger sets where write failures are reported.
func WithKafkaLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewKafkaPublisher starts a publisher writing to the given brokers.
func NewKafkaPublisher(brokers []string, topic string, opts ...KafkaOption) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(writer, opts...), nil
}

func newKafkaPublisher(w messageWriter, opts ...KafkaOption) *KafkaPublisher {
	p := &KafkaPublisher{
		w:      w,
		logger: slog.Default(),
		inbox:  make(chan kafka.Message, defaultBuffer),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	go p.loop()
	return p
}

// Publish enqueues the event; when the buffer is full the event is logged and dropped.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelError, "encode audit event", slog.String("error", err.Error()))
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.Actor),
		Value: value,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
		},
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.inbox <- msg:
	default:
		p.logger.LogAttrs(ctx, slog.LevelWarn, "audit buffer full, event dropped",
			slog.String("audit_id", event.ID), slog.String("action", event.Action))
	}
}

func (p *KafkaPublisher) loop() {
	for msg := range p.inbox {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := p.w.WriteMessages(ctx, msg); err != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "write audit event", slog.String("error", err.Error()))
		}
		cancel()
	}
	close(p.done)
}

// Close flushes queued events and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.done
	return p.w.Close()
}

var _ Publisher = (*KafkaPublisher)(nil)
