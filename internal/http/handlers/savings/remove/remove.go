// Package remove реализует HTTP-обработчик для удаления счёта по ID.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/savings-accounts/internal/http/response"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
)

// Handler обрабатывает запросы на удаление счёта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления счёта.
type Service interface {
	Remove(ctx context.Context, id int) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить счёт
// @Tags SavingsAccounts
// @Produce  json
// @Param id path int true "ID счёта"
// @Success 200 {object} response.Response "Количество удалённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Счёт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /savingsaccounts/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.savings.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	count, err := h.service.Remove(r.Context(), id)
	if errors.Is(err, storage.ErrAccountNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found"))
		return
	}
	if err != nil {
		log.Error("failed to remove account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove account"))
		return
	}

	log.Info("account removed", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_count": count,
	}))
}
