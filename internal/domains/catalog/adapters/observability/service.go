package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/delivery-console/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/delivery-console/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/delivery-console/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) Catalog(ctx context.Context) (catalogdomain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Catalog")
	defer span.End()

	catalog, err := s.inner.Catalog(ctx)
	span.SetAttributes(
		attribute.Int("catalog.products", len(catalog.Products)),
		attribute.Int("catalog.categories", len(catalog.Categories)),
	)
	if err != nil {
		return catalog, s.handleError(ctx, span, err, "failed to load catalog")
	}
	return catalog, nil
}

func (s *Service) CreateProduct(ctx context.Context, draft catalogdomain.Draft) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if err := s.inner.CreateProduct(ctx, draft); err != nil {
		s.metrics.record(ctx, "product.create", "failed")
		return s.handleError(ctx, span, err, "product create failed", slog.String("name", draft.Name))
	}
	s.metrics.record(ctx, "product.create", "succeeded")
	s.logInfo(ctx, "product created", slog.String("name", draft.Name), slog.Bool("image", draft.Image != nil))
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, draft catalogdomain.Draft) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := s.inner.UpdateProduct(ctx, id, draft); err != nil {
		s.metrics.record(ctx, "product.update", "failed")
		return s.handleError(ctx, span, err, "product update failed", slog.Int64("product_id", id))
	}
	s.metrics.record(ctx, "product.update", "succeeded")
	s.logInfo(ctx, "product updated", slog.Int64("product_id", id))
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64, confirm catalogdomain.Confirmation) (bool, error) {
	return s.remove(ctx, "product.delete", id, func(ctx context.Context) (bool, error) {
		return s.inner.DeleteProduct(ctx, id, confirm)
	})
}

func (s *Service) CreateCategory(ctx context.Context, name string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateCategory")
	defer span.End()

	created, err := s.inner.CreateCategory(ctx, name)
	if err != nil {
		s.metrics.record(ctx, "category.create", "failed")
		return false, s.handleError(ctx, span, err, "category create failed", slog.String("name", name))
	}
	if !created {
		s.metrics.record(ctx, "category.create", "skipped")
		return false, nil
	}
	s.metrics.record(ctx, "category.create", "succeeded")
	s.logInfo(ctx, "category created", slog.String("name", name))
	return true, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64, confirm catalogdomain.Confirmation) (bool, error) {
	return s.remove(ctx, "category.delete", id, func(ctx context.Context) (bool, error) {
		return s.inner.DeleteCategory(ctx, id, confirm)
	})
}

func (s *Service) remove(ctx context.Context, op string, id int64, fn func(context.Context) (bool, error)) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Delete", trace.WithAttributes(
		attribute.String("catalog.operation", op),
		attribute.Int64("catalog.id", id),
	))
	defer span.End()

	deleted, err := fn(ctx)
	if err != nil {
		s.metrics.record(ctx, op, "failed")
		return false, s.handleError(ctx, span, err, "catalog delete failed", slog.String("operation", op), slog.Int64("id", id))
	}
	if !deleted {
		s.metrics.record(ctx, op, "declined")
		return false, nil
	}
	s.metrics.record(ctx, op, "succeeded")
	s.logInfo(ctx, "catalog entry deleted", slog.String("operation", op), slog.Int64("id", id))
	return true, nil
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
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("catalog.console.mutations", metric.WithDescription("Catalog changes by operation and outcome"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) record(ctx context.Context, op, outcome string) {
	if m.mutations == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("catalog.operation", op),
		attribute.String("outcome", outcome),
	))
}

var _ catalogports.Service = (*Service)(nil)
