// Package scheduler находит владельцев счетов, у которых сегодня день рождения,
// и публикует для каждого из них поздравление в брокер.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/savings-accounts/internal/lib/birthday"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
)

// NotifiedTTL время жизни отметки об отправленном поздравлении.
const NotifiedTTL = 48 * time.Hour

var greetingsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "birthday_greetings_published_total",
	Help: "Birthday greetings handled by the scheduler, by result.",
}, []string{"result"})

// Repository источник счетов.
type Repository interface {
	ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error)
}

// Marker ставит отметку, если её ещё нет, и снимает её.
type Marker interface {
	SetNX(key string, expiration time.Duration) (bool, error)
	Invalidate(keys ...string) error
}

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Service планировщик поздравлений.
type Service struct {
	repo     Repository
	marker   Marker
	log      *slog.Logger
	interval time.Duration
	loc      *time.Location
	now      func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, marker Marker, interval time.Duration, loc *time.Location, log *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		marker:   marker,
		log:      log,
		interval: interval,
		loc:      loc,
		now:      time.Now,
	}
}

// NotifiedKey ключ отметки о поздравлении счёта id в день date (YYYY-MM-DD).
func NotifiedKey(id int, date string) string {
	return "birthday:notified:" + strconv.Itoa(id) + ":" + date
}

// Run выполняет RunOnce сразу и затем на каждом тике, пока не отменён ctx.
func (s *Service) Run(ctx context.Context, pub Publisher) {
	s.tick(ctx, pub)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("birthday scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx, pub)
		}
	}
}

func (s *Service) tick(ctx context.Context, pub Publisher) {
	n, err := s.RunOnce(ctx, pub, s.now())
	if err != nil {
		s.log.Error("birthday scheduler run failed", sl.Err(err))
		return
	}
	s.log.Info("birthday scheduler run finished", slog.Int("published", n))
}

// RunOnce публикует поздравления за календарный день now в часовом поясе планировщика.
// Возвращает число опубликованных сообщений. Ошибка публикации одного счёта
// не прерывает обработку остальных.
func (s *Service) RunOnce(ctx context.Context, pub Publisher, now time.Time) (int, error) {
	const op = "scheduler.RunOnce"

	today := now.In(s.loc)
	date := today.Format(time.DateOnly)

	published := 0
	for _, filter := range birthday.ForDate(today) {
		accounts, err := s.repo.ListByBirthday(ctx, filter)
		if err != nil {
			return published, fmt.Errorf("%s: %w", op, err)
		}
		for _, a := range accounts {
			if ctx.Err() != nil {
				return published, fmt.Errorf("%s: %w", op, ctx.Err())
			}
			if a.Status == models.StatusClosed {
				continue
			}
			if s.greet(pub, a, date) {
				published++
			}
		}
	}
	return published, nil
}

func (s *Service) greet(pub Publisher, a *models.SavingsAccount, date string) bool {
	log := s.log.With(slog.Int("account_id", a.ID), slog.String("date", date))

	key := NotifiedKey(a.ID, date)
	first, err := s.marker.SetNX(key, NotifiedTTL)
	if err != nil {
		log.Error("failed to mark account as notified", sl.Err(err))
		greetingsPublished.WithLabelValues("error").Inc()
		return false
	}
	if !first {
		greetingsPublished.WithLabelValues("skipped").Inc()
		return false
	}

	greeting := models.BirthdayGreeting{
		AccountID:   a.ID,
		AccountNo:   a.AccountNo,
		ClientName:  a.ClientName,
		ClientEmail: a.ClientEmail,
		ProductName: a.ProductName,
		Date:        date,
	}
	if err := pub.Publish(rabbitmq.BirthdayRoutingKey, greeting); err != nil {
		log.Error("failed to publish birthday greeting", sl.Err(err))
		// следующий тик должен повторить попытку
		if err := s.marker.Invalidate(key); err != nil {
			log.Error("failed to unmark account", sl.Err(err))
		}
		greetingsPublished.WithLabelValues("error").Inc()
		return false
	}
	greetingsPublished.WithLabelValues("published").Inc()
	return true
}
