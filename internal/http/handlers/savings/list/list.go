// Package list реализует HTTP-обработчик выборки сберегательных счетов.
//
// Без параметров дня рождения возвращает страницу счетов. С параметрами
// birthDay и birthMonth возвращает счета, у владельцев которых день рождения
// приходится на этот день и месяц в любом году; с birthYear — ровно на эту дату.
// Значения вне календаря (например, 32 или 13) ошибкой не считаются
// и дают пустой массив.
package list

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/savings-accounts/internal/http/response"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
)

// Ограничения постраничной выборки.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

var errBadQuery = errors.New("bad query")

// Handler обрабатывает запросы выборки счетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки счетов.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.SavingsAccount, error)
	ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список счетов
// @Description Возвращает массив счетов. С birthDay и birthMonth — счета клиентов,
// @Description родившихся в этот день и месяц любого года; с birthYear — ровно в эту дату.
// @Tags SavingsAccounts
// @Produce  json
// @Param birthDay query int false "День рождения"
// @Param birthMonth query int false "Месяц рождения"
// @Param birthYear query int false "Год рождения"
// @Param limit query int false "Размер страницы (по умолчанию 100, не больше 1000)"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.SavingsAccount "Счета"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры запроса"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /savingsaccounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.savings.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()
	filter, byBirthday, err := parseBirthdayFilter(query)
	if err != nil {
		log.Warn("invalid birthday filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	var res []*models.SavingsAccount
	if byBirthday {
		res, err = h.service.ListByBirthday(r.Context(), filter)
	} else {
		limit, offset, perr := parsePage(query)
		if perr != nil {
			log.Warn("invalid pagination", sl.Err(perr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(perr.Error()))
			return
		}
		res, err = h.service.List(r.Context(), limit, offset)
	}
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list accounts"))
		return
	}
	if res == nil {
		res = []*models.SavingsAccount{}
	}

	log.Info("accounts listed", slog.Int("count", len(res)), slog.Bool("by_birthday", byBirthday))
	render.JSON(w, r, res)
}

// parseBirthdayFilter разбирает birthDay, birthMonth и birthYear.
// Второе значение false означает, что фильтр по дню рождения не задан.
func parseBirthdayFilter(q url.Values) (models.BirthdayFilter, bool, error) {
	hasDay, hasMonth, hasYear := q.Has("birthDay"), q.Has("birthMonth"), q.Has("birthYear")
	if !hasDay && !hasMonth && !hasYear {
		return models.BirthdayFilter{}, false, nil
	}
	if !hasDay || !hasMonth {
		return models.BirthdayFilter{}, false, fmt.Errorf("%w: birthDay and birthMonth must be given together", errBadQuery)
	}

	day, err := intParam(q, "birthDay")
	if err != nil {
		return models.BirthdayFilter{}, false, err
	}
	month, err := intParam(q, "birthMonth")
	if err != nil {
		return models.BirthdayFilter{}, false, err
	}
	filter := models.BirthdayFilter{Day: day, Month: month}

	if hasYear {
		year, err := intParam(q, "birthYear")
		if err != nil {
			return models.BirthdayFilter{}, false, err
		}
		filter.Year = &year
	}
	return filter, true, nil
}

func parsePage(q url.Values) (limit, offset int, err error) {
	limit, offset = DefaultLimit, 0
	if q.Has("limit") {
		if limit, err = intParam(q, "limit"); err != nil {
			return 0, 0, err
		}
		if limit < 0 {
			return 0, 0, fmt.Errorf("%w: limit must not be negative", errBadQuery)
		}
		if limit == 0 {
			limit = DefaultLimit
		}
		limit = min(limit, MaxLimit)
	}
	if q.Has("offset") {
		if offset, err = intParam(q, "offset"); err != nil {
			return 0, 0, err
		}
		if offset < 0 {
			return 0, 0, fmt.Errorf("%w: offset must not be negative", errBadQuery)
		}
	}
	return limit, offset, nil
}

func intParam(q url.Values, name string) (int, error) {
	v, err := strconv.Atoi(q.Get(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadQuery, name)
	}
	return v, nil
}
