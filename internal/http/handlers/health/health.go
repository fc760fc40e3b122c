// Package health отдаёт состояние сервиса и его зависимостей.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/savings-accounts/internal/http/response"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
)

// Check проверяет доступность одной зависимости.
type Check func(ctx context.Context) error

// Handler отвечает на /health, опрашивая проверки зависимостей.
type Handler struct {
	log    *slog.Logger
	checks map[string]Check
}

// New создает обработчик. checks по имени зависимости; пустой набор означает,
// что проверяется только сам сервис.
func New(log *slog.Logger, checks map[string]Check) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Состояние сервиса
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{"service": "ok"}
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Error("dependency is unhealthy", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Response{Status: response.StatusError, Data: status})
		return
	}
	render.JSON(w, r, response.OKWithData(status))
}
