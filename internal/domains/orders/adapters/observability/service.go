package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/Apurer/delivery-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/delivery-console/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/delivery-console/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) Load(ctx context.Context) (*ordersdomain.Board, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Load")
	defer span.End()

	board, err := s.inner.Load(ctx)
	if board != nil {
		span.SetAttributes(attribute.Int("orders.count", len(board.Orders())))
	}
	if err != nil {
		return board, s.handleError(ctx, span, err, "failed to load orders board")
	}
	return board, nil
}

func (s *Service) Board(ctx context.Context) (*ordersdomain.Board, error) {
	return s.inner.Board(ctx)
}

func (s *Service) Accept(ctx context.Context, id int64) error {
	return s.action(ctx, ordersdomain.ActionAccept, id, func(ctx context.Context) error {
		return s.inner.Accept(ctx, id)
	})
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.action(ctx, ordersdomain.ActionCancel, id, func(ctx context.Context) error {
		return s.inner.Cancel(ctx, id)
	})
}

func (s *Service) Deliver(ctx context.Context, id int64) error {
	return s.action(ctx, ordersdomain.ActionDeliver, id, func(ctx context.Context) error {
		return s.inner.Deliver(ctx, id)
	})
}

func (s *Service) Assign(ctx context.Context, id int64, deliveryPersonID string) error {
	return s.action(ctx, ordersdomain.ActionAssign, id, func(ctx context.Context) error {
		return s.inner.Assign(ctx, id, deliveryPersonID)
	}, slog.String("delivery_person_id", deliveryPersonID))
}

func (s *Service) Discard() {
	s.inner.Discard()
}

func (s *Service) action(ctx context.Context, action ordersdomain.Action, id int64, fn func(context.Context) error, attrs ...slog.Attr) error {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Action", trace.WithAttributes(
		attribute.String("order.action", string(action)),
		attribute.Int64("order.id", id),
	))
	defer span.End()

	attrs = append(attrs, slog.String("action", string(action)), slog.Int64("order_id", id))
	if err := fn(ctx); err != nil {
		s.metrics.recordAction(ctx, action, "failed")
		return s.handleError(ctx, span, err, "order action rejected", attrs...)
	}
	s.metrics.recordAction(ctx, action, "succeeded")
	s.logInfo(ctx, "order action applied", attrs...)
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
	actions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	actions, _ := m.Int64Counter("orders.console.actions", metric.WithDescription("Order workflow actions by outcome"))
	return serviceMetrics{actions: actions}
}

func (m serviceMetrics) recordAction(ctx context.Context, action ordersdomain.Action, outcome string) {
	if m.actions == nil {
		return
	}
	m.actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("order.action", string(action)),
		attribute.String("outcome", outcome),
	))
}

var _ ordersports.Service = (*Service)(nil)
