// Package read реализует HTTP-обработчик для получения счёта по ID.
package read

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
	"github.com/magabrotheeeer/savings-accounts/internal/models"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
)

// Handler обрабатывает запросы на получение счёта по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения счёта.
type Service interface {
	Read(ctx context.Context, id int) (*models.SavingsAccount, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить счёт
// @Tags SavingsAccounts
// @Produce  json
// @Param id path int true "ID счёта"
// @Success 200 {object} response.Response "Данные счёта"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Счёт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /savingsaccounts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.savings.read"

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

	res, err := h.service.Read(r.Context(), id)
	if errors.Is(err, storage.ErrAccountNotFound) {
		log.Info("account not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found"))
		return
	}
	if err != nil {
		log.Error("failed to read account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read account"))
		return
	}

	render.JSON(w, r, response.OKWithData(res))
}
