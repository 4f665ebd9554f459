// Package console boots the store-owner console process.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	authgateway "github.com/Apurer/delivery-console/internal/domains/auth/adapters/backend"
	authobs "github.com/Apurer/delivery-console/internal/domains/auth/adapters/observability"
	authapp "github.com/Apurer/delivery-console/internal/domains/auth/application"
	ordersmemory "github.com/Apurer/delivery-console/internal/domains/orders/adapters/memory"
	storememory "github.com/Apurer/delivery-console/internal/domains/store/adapters/memory"
	platformobservability "github.com/Apurer/delivery-console/internal/platform/observability"
	"github.com/Apurer/delivery-console/internal/web"
)

const serviceName = "delivery-console"

// Run boots the console HTTP server with observability, session storage and the backend client wired.
// It blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}

	sessions, cleanupSessions := buildSessionStore(ctx, cfg, logger)
	defer cleanupSessions()

	publisher := buildAuditPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to flush audit publisher", slog.String("error", err.Error()))
		}
	}()

	switches := storememory.NewSwitchRegistry()
	boards := ordersmemory.NewBoardCache()
	factories := sessionFactories{
		client:      client,
		switches:    switches,
		boards:      boards,
		instruments: instruments,
		logger:      logger,
	}
	coreAuth := authapp.NewService(
		authgateway.NewGateway(client),
		sessions,
		authapp.WithSessionTTL(cfg.SessionTTL),
		authapp.WithTeardown(switches.Forget),
		authapp.WithTeardown(boards.Forget),
	)
	go sweepSessions(ctx, cfg.SessionSweep, coreAuth, logger, switches.Sessions, boards.Sessions)
	authService := authobs.New(coreAuth,
		authobs.WithLogger(logger),
		authobs.WithTracer(instruments.Tracer("internal.auth.application")),
		authobs.WithMeter(instruments.Meter("internal.auth.application")),
	)

	gin.SetMode(gin.ReleaseMode)
	router, err := web.NewRouter(newWebConfig(cfg, authService, factories, publisher))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("delivery console listening",
			slog.String("addr", server.Addr),
			slog.String("backend", cfg.BackendBaseURL),
			slog.String("sessions", cfg.SessionBackend),
		)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("delivery console exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down delivery console")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
