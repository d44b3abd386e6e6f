package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"deliverydash/internal/config"
	apierrors "deliverydash/internal/errors"
	"deliverydash/internal/infrastructure"
	custommw "deliverydash/internal/middleware"
	"deliverydash/internal/services"
	handlers "deliverydash/internal/transport/http"
	"deliverydash/pkg/contracts"
)

const (
	Version = contracts.Version
	AppName = "deliverydash"
)

// Application wires configuration, logging, the delivery service, and the
// HTTP server together.
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	DeliveryService *services.DeliveryService
	Logger          *slog.Logger
}

// NewApplication builds the application container. The dataset is loaded
// eagerly so a missing or malformed source file fails startup instead of
// the first request.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	app := &Application{
		Config:          cfg,
		DeliveryService: services.NewDeliveryService(cfg, logger),
		Logger:          logger,
	}

	if _, err := app.DeliveryService.Dataset(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to load delivery dataset: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter assembles the middleware chain and mounts the API routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.Compress(5))

	if a.Config.Security.RateLimit.Enabled {
		rl := custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(rl.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(custommw.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.DeliveryService, a.Logger, errorHandler, Version)
		r.Mount("/health", healthHandler.Routes())

		deliveryHandler := handlers.NewDeliveryHandler(a.DeliveryService, a.Logger, errorHandler)
		r.Mount("/delivery", deliveryHandler.Routes())
	})

	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

// createServer creates the HTTP server.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Stop gracefully stops the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	infrastructure.CloseLogFile()

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run serves until ctx is canceled or the listener fails, then shuts down
// gracefully. The caller owns signal handling; cmd/web passes a context
// canceled on SIGINT/SIGTERM.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "application started",
			slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}
