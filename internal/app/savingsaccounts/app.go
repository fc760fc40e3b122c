package savingsaccounts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/savings-accounts/internal/app/bootstrap"
	"github.com/magabrotheeeer/savings-accounts/internal/config"
	savingsservice "github.com/magabrotheeeer/savings-accounts/internal/services/savings"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервис счетов.
type App struct {
	server *http.Server
	logger *slog.Logger
	deps   *bootstrap.Deps
}

// New открывает зависимости, применяет миграции и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	deps, err := bootstrap.Open(ctx, cfg, logger, true)
	if err != nil {
		return nil, err
	}

	service := savingsservice.NewService(deps.Repo, deps.Cache, cfg.CacheTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, service, deps.Checks, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		deps:   deps,
	}, nil
}

// Run обслуживает HTTP до отмены ctx, затем корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	defer a.deps.Close(a.logger)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
