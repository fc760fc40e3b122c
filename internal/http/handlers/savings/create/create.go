// Package create реализует HTTP-обработчик для открытия сберегательного счёта.
//
// Handler принимает JSON с данными счёта, валидирует его, вызывает сервис
// и возвращает ID созданной записи.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/savings-accounts/internal/http/response"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
	"github.com/magabrotheeeer/savings-accounts/internal/services/savings"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
)

// Handler управляет HTTP-запросами на создание счетов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики счетов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания счёта.
type Service interface {
	Create(ctx context.Context, req models.DummyAccount) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать сберегательный счёт
// @Description Создает новый счёт. Возвращает ID созданной записи.
// @Tags SavingsAccounts
// @Accept  json
// @Produce  json
// @Param request body models.DummyAccount true "Данные нового счёта"
// @Success 201 {object} response.Response "Счёт создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Счёт с таким номером уже есть"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /savingsaccounts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.savings.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	id, err := h.service.Create(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrAccountExists):
		log.Warn("account already exists", slog.String("account_no", req.AccountNo))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("account already exists"))
		return
	case errors.Is(err, savings.ErrInvalidBirthDate), errors.Is(err, savings.ErrInvalidBalance):
		log.Warn("invalid account data", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	default:
		log.Error("failed to create account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create account"))
		return
	}

	log.Info("account created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
