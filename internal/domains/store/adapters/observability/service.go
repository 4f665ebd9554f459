package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	storedomain "github.com/Apurer/delivery-console/internal/domains/store/domain"
	storeports "github.com/Apurer/delivery-console/internal/domains/store/ports"
)

const tracerName = "github.com/Apurer/delivery-console/internal/domains/store/adapters/observability/service"

// Service decorates the store status service with tracing, logging, and metrics.
type Service struct {
	inner   storeports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core store status service.
func New(inner storeports.Service, opts ...Option) storeports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Snapshot() storedomain.Snapshot {
	return s.inner.Snapshot()
}

func (s *Service) Refresh(ctx context.Context) (storedomain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.Refresh")
	defer span.End()

	snapshot, err := s.inner.Refresh(ctx)
	if err != nil {
		return snapshot, s.handleError(ctx, span, err, "failed to fetch store status")
	}
	span.SetAttributes(attribute.String("store.status", snapshot.Status.String()))
	return snapshot, nil
}

func (s *Service) Open(ctx context.Context) error {
	return s.toggle(ctx, storedomain.CommandOpen, s.inner.Open)
}

func (s *Service) Close(ctx context.Context) error {
	return s.toggle(ctx, storedomain.CommandClose, s.inner.Close)
}

func (s *Service) toggle(ctx context.Context, cmd storedomain.Command, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "StoreService.Toggle", trace.WithAttributes(attribute.String("store.command", string(cmd))))
	defer span.End()

	before := s.inner.Snapshot()
	s.logInfo(ctx, "store toggle requested", slog.String("command", string(cmd)), slog.String("status", before.Status.String()))
	if err := fn(ctx); err != nil {
		return s.handleError(ctx, span, err, "store toggle failed", slog.String("command", string(cmd)))
	}
	after := s.inner.Snapshot()
	s.metrics.recordToggle(ctx, cmd, before.Allows(cmd))
	s.logInfo(ctx, "store toggle completed", slog.String("command", string(cmd)), slog.String("status", after.Status.String()))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	toggles metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	toggles, _ := m.Int64Counter("store.console.toggles", metric.WithDescription("Store open/close commands by outcome"))
	return serviceMetrics{toggles: toggles}
}

func (m serviceMetrics) recordToggle(ctx context.Context, cmd storedomain.Command, sent bool) {
	if m.toggles == nil {
		return
	}
	outcome := "skipped"
	if sent {
		outcome = "sent"
	}
	m.toggles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("store.command", string(cmd)),
		attribute.String("outcome", outcome),
	))
}

var _ storeports.Service = (*Service)(nil)
