package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
	authports "github.com/Apurer/delivery-console/internal/domains/auth/ports"
)

const tracerName = "github.com/Apurer/delivery-console/internal/domains/auth/adapters/observability/service"

// Service decorates the auth service with tracing, logging, and metrics.
type Service struct {
	inner   authports.Service
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

// New wraps the core auth service.
func New(inner authports.Service, opts ...Option) authports.Service {
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

func (s *Service) Login(ctx context.Context, email, password string) (*authdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	session, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, "failed")
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("email", email))
	}
	s.metrics.recordLogin(ctx, "succeeded")
	s.logInfo(ctx, "session opened", slog.String("email", session.Email), slog.Time("expires_at", session.ExpiresAt))
	return session, nil
}

func (s *Service) Register(ctx context.Context, registration authdomain.Registration) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if err := s.inner.Register(ctx, registration); err != nil {
		return s.handleError(ctx, span, err, "registration rejected", slog.String("email", registration.Email))
	}
	s.logInfo(ctx, "store owner registered", slog.String("email", registration.Email))
	return nil
}

func (s *Service) Session(ctx context.Context, id string) (*authdomain.Session, error) {
	return s.inner.Session(ctx, id)
}

func (s *Service) Logout(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	if err := s.inner.Logout(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to end session")
	}
	s.logInfo(ctx, "session closed")
	return nil
}

func (s *Service) Flash(ctx context.Context, id, message string) error {
	return s.inner.Flash(ctx, id, message)
}

func (s *Service) TakeFlashes(ctx context.Context, id string) ([]string, error) {
	return s.inner.TakeFlashes(ctx, id)
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
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	logins metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("auth.console.logins", metric.WithDescription("Console login attempts by outcome"))
	return serviceMetrics{logins: logins}
}

func (m serviceMetrics) recordLogin(ctx context.Context, outcome string) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

var _ authports.Service = (*Service)(nil)
