// Package update реализует HTTP-обработчик для изменения счёта по ID.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/savings-accounts/internal/http/response"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
	"github.com/magabrotheeeer/savings-accounts/internal/services/savings"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
)

// Handler обрабатывает запросы на полное обновление счёта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления счёта.
type Service interface {
	Update(ctx context.Context, req models.DummyAccount, id int) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить счёт
// @Tags SavingsAccounts
// @Accept  json
// @Produce  json
// @Param id path int true "ID счёта"
// @Param request body models.DummyAccount true "Новые данные счёта"
// @Success 200 {object} response.Response "Количество обновлённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или JSON"
// @Failure 404 {object} response.ErrorResponse "Счёт не найден"
// @Failure 409 {object} response.ErrorResponse "Номер счёта занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /savingsaccounts/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.savings.update"

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

	var req models.DummyAccount
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	count, err := h.service.Update(r.Context(), req, id)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrAccountNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found"))
		return
	case errors.Is(err, storage.ErrAccountExists):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("account already exists"))
		return
	case errors.Is(err, savings.ErrInvalidBirthDate), errors.Is(err, savings.ErrInvalidBalance):
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	default:
		log.Error("failed to update account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update account"))
		return
	}

	log.Info("account updated", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": count,
	}))
}
