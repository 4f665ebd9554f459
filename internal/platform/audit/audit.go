// Package audit records console mutations for later inspection.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Event describes one successful console mutation.
type Event struct {
	ID         string            `json:"id"`
	At         time.Time         `json:"at"`
	Actor      string            `json:"actor"`
	Action     string            `json:"action"`
	Resource   string            `json:"resource"`
	ResourceID string            `json:"resourceId,omitempty"`
	Detail     map[string]string `json:"detail,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(actor, action, resource, resourceID string) Event {
	return Event{
		ID:         uuid.NewString(),
		At:         time.Now().UTC(),
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
	}
}

// With attaches a detail attribute.
func (e Event) With(key, value string) Event {
	detail := make(map[string]string, len(e.Detail)+1)
	for k, v := range e.Detail {
		detail[k] = v
	}
	detail[key] = value
	e.Detail = detail
	return e
}

// Publisher ships audit events somewhere durable. Publishing never blocks a
// page render on the sink's availability.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// LogPublisher writes events to the structured log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	raw, _ := json.Marshal(event.Detail)
	p.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("audit_id", event.ID),
		slog.String("actor", event.Actor),
		slog.String("action", event.Action),
		slog.String("resource", event.Resource),
		slog.String("resource_id", event.ResourceID),
		slog.String("detail", string(raw)),
	)
}

func (p *LogPublisher) Close() error { return nil }

var _ Publisher = (*LogPublisher)(nil)
