package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"TenderBoard/internal/config"
	"TenderBoard/internal/infrastructure/dataset"
	"TenderBoard/internal/infrastructure/web"
	"TenderBoard/internal/logging"
	"TenderBoard/internal/usecase"
)

// Application wires configs to the query pipeline and the HTTP server.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	server *web.Server
	cache  *dataset.Cache
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	loader := dataset.NewLoader(baseLogger.With("component", "dataset.loader"))
	cache := dataset.NewCache(cfg.Dataset.Path, loader, baseLogger.With("component", "dataset.cache"))

	dashboard := usecase.NewDashboard(usecase.DashboardDeps{
		Source: cache,
		TopN:   cfg.Display.TopN,
		Logger: baseLogger.With("component", "dashboard"),
	})

	server, err := web.NewServer(dashboard, cfg.Display.Currency, baseLogger.With("component", "web"))
	if err != nil {
		return nil, fmt.Errorf("build server: %w", err)
	}

	return &Application{cfg: cfg, logger: baseLogger, server: server, cache: cache}, nil
}

// Run loads the dataset eagerly, serves HTTP and blocks until ctx is
// cancelled or the listener fails. A missing dataset is fatal up front:
// nothing can render without data.
func (a *Application) Run(ctx context.Context) error {
	table, err := a.cache.GetOrLoad(ctx)
	if err != nil {
		return fmt.Errorf("initial dataset load: %w", err)
	}
	a.logger.Info("serving dashboard",
		"addr", a.cfg.Server.Addr,
		"records", len(table.Records))

	httpServer := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: a.server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}
