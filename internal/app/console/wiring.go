package console

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	backendclient "github.com/Apurer/delivery-console/internal/clients/http/backend"
	authmemory "github.com/Apurer/delivery-console/internal/domains/auth/adapters/memory"
	authpostgres "github.com/Apurer/delivery-console/internal/domains/auth/adapters/persistence/postgres"
	authredis "github.com/Apurer/delivery-console/internal/domains/auth/adapters/redis"
	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
	authports "github.com/Apurer/delivery-console/internal/domains/auth/ports"
	catalogbackend "github.com/Apurer/delivery-console/internal/domains/catalog/adapters/backend"
	catalogobs "github.com/Apurer/delivery-console/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/delivery-console/internal/domains/catalog/application"
	catalogports "github.com/Apurer/delivery-console/internal/domains/catalog/ports"
	ordersbackend "github.com/Apurer/delivery-console/internal/domains/orders/adapters/backend"
	ordersobs "github.com/Apurer/delivery-console/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/delivery-console/internal/domains/orders/application"
	ordersports "github.com/Apurer/delivery-console/internal/domains/orders/ports"
	storebackend "github.com/Apurer/delivery-console/internal/domains/store/adapters/backend"
	storememory "github.com/Apurer/delivery-console/internal/domains/store/adapters/memory"
	storeobs "github.com/Apurer/delivery-console/internal/domains/store/adapters/observability"
	storeapp "github.com/Apurer/delivery-console/internal/domains/store/application"
	storeports "github.com/Apurer/delivery-console/internal/domains/store/ports"
	"github.com/Apurer/delivery-console/internal/platform/audit"
	"github.com/Apurer/delivery-console/internal/platform/migrations"
	platformobservability "github.com/Apurer/delivery-console/internal/platform/observability"
	platformpostgres "github.com/Apurer/delivery-console/internal/platform/postgres"
	"github.com/Apurer/delivery-console/internal/web"
)

// sessionFactories binds per-session domain services to the shared backend client.
// The switch registry and board cache outlive requests and are released on logout.
type sessionFactories struct {
	client      *backendclient.Client
	switches    *storememory.SwitchRegistry
	boards      ordersports.BoardCache
	instruments *platformobservability.Instruments
	logger      *slog.Logger
}

func (f sessionFactories) store(session *authdomain.Session) storeports.Service {
	core := storeapp.NewService(
		storebackend.NewGateway(f.client.ForSession(session.Token)),
		f.switches.For(session.ID),
	)
	return storeobs.New(core,
		storeobs.WithLogger(f.logger),
		storeobs.WithTracer(f.instruments.Tracer("internal.store.application")),
		storeobs.WithMeter(f.instruments.Meter("internal.store.application")),
	)
}

func (f sessionFactories) orders(session *authdomain.Session) ordersports.Service {
	core := ordersapp.NewService(
		ordersbackend.NewGateway(f.client.ForSession(session.Token)),
		f.boards,
		session.ID,
	)
	return ordersobs.New(core,
		ordersobs.WithLogger(f.logger),
		ordersobs.WithTracer(f.instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(f.instruments.Meter("internal.orders.application")),
	)
}

func (f sessionFactories) catalog(session *authdomain.Session) catalogports.Service {
	core := catalogapp.NewService(catalogbackend.NewGateway(f.client.ForSession(session.Token)))
	return catalogobs.New(core,
		catalogobs.WithLogger(f.logger),
		catalogobs.WithTracer(f.instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(f.instruments.Meter("internal.catalog.application")),
	)
}

func newBackendClient(cfg Config) (*backendclient.Client, error) {
	return backendclient.NewClient(cfg.BackendBaseURL,
		backendclient.WithHTTPClient(&http.Client{
			Timeout:   cfg.BackendTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
		backendclient.WithStoreToggleMethod(cfg.StoreToggleMethod),
	)
}

// buildSessionStore picks the configured session backend, falling back to memory
// when the backing service is unreachable.
func buildSessionStore(ctx context.Context, cfg Config, logger *slog.Logger) (authports.SessionStore, func()) {
	switch cfg.SessionBackend {
	case SessionBackendPostgres:
		db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Warn("failed to connect to postgres, falling back to in-memory sessions", slog.String("error", err.Error()))
			return authmemory.NewSessionStore(), func() {}
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Warn("failed to unwrap postgres connection, falling back to in-memory sessions", slog.String("error", err.Error()))
			return authmemory.NewSessionStore(), func() {}
		}
		if err := migrations.Run(db); err != nil {
			_ = sqlDB.Close()
			logger.Warn("failed to migrate session schema, falling back to in-memory sessions", slog.String("error", err.Error()))
			return authmemory.NewSessionStore(), func() {}
		}
		logger.Info("session store configured with postgres")
		return authpostgres.NewSessionStore(db), func() { _ = sqlDB.Close() }
	case SessionBackendRedis:
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			logger.Warn("failed to connect to redis, falling back to in-memory sessions", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			return authmemory.NewSessionStore(), func() {}
		}
		logger.Info("session store configured with redis", slog.String("addr", cfg.RedisAddr))
		return authredis.NewSessionStore(rdb), func() { _ = rdb.Close() }
	default:
		return authmemory.NewSessionStore(), func() {}
	}
}

// buildAuditPublisher publishes to Kafka when brokers are configured, otherwise to the log.
func buildAuditPublisher(cfg Config, logger *slog.Logger) audit.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewLogPublisher(logger)
	}
	publisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic, audit.WithKafkaLogger(logger))
	if err != nil {
		logger.Warn("kafka audit publisher unavailable, logging audit events", slog.String("error", err.Error()))
		return audit.NewLogPublisher(logger)
	}
	logger.Info("audit events published to kafka", slog.String("topic", cfg.AuditTopic))
	return publisher
}

func newWebConfig(cfg Config, auth authports.Service, f sessionFactories, publisher audit.Publisher) web.Config {
	return web.Config{
		ServiceName:  serviceName,
		Auth:         auth,
		Store:        f.store,
		Orders:       f.orders,
		Catalog:      f.catalog,
		Audit:        publisher,
		Logger:       f.logger,
		CookieName:   cfg.SessionCookie,
		CookieSecure: cfg.CookieSecure,
		PollInterval: cfg.StatusPoll,
	}
}
