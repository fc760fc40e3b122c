// Package savingsaccounts собирает HTTP-сервис сберегательных счетов.
package savingsaccounts

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/savings-accounts/docs"
	"github.com/magabrotheeeer/savings-accounts/internal/config"
	"github.com/magabrotheeeer/savings-accounts/internal/http/handlers/health"
	"github.com/magabrotheeeer/savings-accounts/internal/http/handlers/savings/create"
	"github.com/magabrotheeeer/savings-accounts/internal/http/handlers/savings/list"
	"github.com/magabrotheeeer/savings-accounts/internal/http/handlers/savings/read"
	"github.com/magabrotheeeer/savings-accounts/internal/http/handlers/savings/remove"
	"github.com/magabrotheeeer/savings-accounts/internal/http/handlers/savings/update"
	"github.com/magabrotheeeer/savings-accounts/internal/http/middlewarectx"
	savingsservice "github.com/magabrotheeeer/savings-accounts/internal/services/savings"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg config.HTTPServer,
	service *savingsservice.Service,
	checks map[string]health.Check,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) {
	metrics := middlewarectx.NewMetrics(reg)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}),
		metrics.Handler,
	)

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/savingsaccounts", create.New(logger, service).ServeHTTP)
		r.Get("/savingsaccounts", list.New(logger, service).ServeHTTP)
		r.Get("/savingsaccounts/{id}", read.New(logger, service).ServeHTTP)
		r.Put("/savingsaccounts/{id}", update.New(logger, service).ServeHTTP)
		r.Delete("/savingsaccounts/{id}", remove.New(logger, service).ServeHTTP)
	})

	r.Get("/health", health.New(logger, checks).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
