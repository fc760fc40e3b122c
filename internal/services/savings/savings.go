// Package savings содержит бизнес-логику работы со сберегательными счетами,
// включая выборку по дню рождения клиента и кеширование её результатов.
package savings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/savings-accounts/internal/lib/birthday"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
)

var (
	// ErrInvalidBirthDate возвращается, если день, месяц и год рождения не образуют дату.
	ErrInvalidBirthDate = errors.New("invalid birth date")
	// ErrInvalidBalance возвращается, если баланс не является десятичным числом.
	ErrInvalidBalance = errors.New("invalid balance")
)

// Repository определяет методы работы со счетами в хранилище.
type Repository interface {
	Create(ctx context.Context, account models.SavingsAccount) (int, error)
	Read(ctx context.Context, id int) (*models.SavingsAccount, error)
	Update(ctx context.Context, account models.SavingsAccount, id int) (int, error)
	Remove(ctx context.Context, id int) (int, error)
	List(ctx context.Context, limit, offset int) ([]*models.SavingsAccount, error)
	ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(keys ...string) error
}

// Service реализует бизнес-логику работы со счетами.
type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создаёт новый экземпляр Service.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func accountKey(id int) string {
	return fmt.Sprintf("savings:account:%d", id)
}

func toAccount(req models.DummyAccount) (models.SavingsAccount, error) {
	if !birthday.ValidDate(req.BirthDay, req.BirthMonth, req.BirthYear) {
		return models.SavingsAccount{}, fmt.Errorf("%w: %02d.%02d.%d", ErrInvalidBirthDate, req.BirthDay, req.BirthMonth, req.BirthYear)
	}

	balance := decimal.Zero
	if req.Balance != "" {
		var err error
		balance, err = decimal.NewFromString(req.Balance)
		if err != nil {
			return models.SavingsAccount{}, fmt.Errorf("%w: %s", ErrInvalidBalance, req.Balance)
		}
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	return models.SavingsAccount{
		AccountNo:   req.AccountNo,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ProductName: req.ProductName,
		Status:      status,
		Currency:    strings.ToUpper(req.Currency),
		Balance:     balance,
		BirthDay:    req.BirthDay,
		BirthMonth:  req.BirthMonth,
		BirthYear:   req.BirthYear,
	}, nil
}

func (s *Service) invalidate(keys ...string) {
	if err := s.cache.Invalidate(keys...); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("keys", keys), sl.Err(err))
	}
}

func versionKey(key string) string {
	return key + ":version"
}

// version возвращает текущую версию выборки по ключу key, "" если её нет.
func (s *Service) version(key string) string {
	var v string
	if _, err := s.cache.Get(versionKey(key), &v); err != nil {
		s.log.Warn("failed to read cache version", slog.String("key", key), sl.Err(err))
	}
	return v
}

// invalidateBirthday меняет версию выборок и сбрасывает их вместе с extra.
// Версия нужна ListByBirthday, чтобы не оставить в кеше результат,
// прочитанный до изменения.
func (s *Service) invalidateBirthday(keys []string, extra ...string) {
	for _, key := range keys {
		if err := s.cache.Set(versionKey(key), uuid.NewString(), s.cacheTTL); err != nil {
			s.log.Warn("failed to bump cache version", slog.String("key", key), sl.Err(err))
		}
	}
	s.invalidate(append(keys, extra...)...)
}

// Create создаёт счёт и сбрасывает кеш выборок по его дню рождения.
func (s *Service) Create(ctx context.Context, req models.DummyAccount) (int, error) {
	const op = "services.savings.Create"

	account, err := toAccount(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	account.ExternalID = uuid.New()

	id, err := s.repo.Create(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created savings account", slog.Int("id", id), slog.String("account_no", account.AccountNo))

	s.invalidateBirthday(birthday.CacheKeys(account))
	return id, nil
}

// Read возвращает счёт по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id int) (*models.SavingsAccount, error) {
	const op = "services.savings.Read"

	var cached models.SavingsAccount
	found, err := s.cache.Get(accountKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.Int("id", id), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	account, err := s.repo.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(accountKey(id), account, s.cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.Int("id", id), sl.Err(err))
	}
	return account, nil
}

// Update обновляет счёт. Сбрасываются выборки и по старой, и по новой дате рождения.
func (s *Service) Update(ctx context.Context, req models.DummyAccount, id int) (int, error) {
	const op = "services.savings.Update"

	account, err := toAccount(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	previous, err := s.repo.Read(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.repo.Update(ctx, account, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated savings account", slog.Int("id", id))

	keys := append(birthday.CacheKeys(*previous), birthday.CacheKeys(account)...)
	s.invalidateBirthday(keys, accountKey(id))
	return n, nil
}

// Remove удаляет счёт и сбрасывает связанные ключи кеша.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	const op = "services.savings.Remove"

	account, err := s.repo.Read(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.repo.Remove(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed savings account", slog.Int("id", id))

	s.invalidateBirthday(birthday.CacheKeys(*account), accountKey(id))
	return n, nil
}

// List возвращает страницу счетов без фильтра.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.SavingsAccount, error) {
	const op = "services.savings.List"

	accounts, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if accounts == nil {
		accounts = make([]*models.SavingsAccount, 0)
	}
	return accounts, nil
}

// ListByBirthday возвращает счета по дню рождения клиента. Повторный одинаковый запрос
// отдаёт тот же результат из кеша, пока счёт с этой датой не будет изменён.
func (s *Service) ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error) {
	const op = "services.savings.ListByBirthday"
	key := birthday.CacheKey(filter)

	var cached []*models.SavingsAccount
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}

	version := s.version(key)
	accounts, err := s.repo.ListByBirthday(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if accounts == nil {
		accounts = make([]*models.SavingsAccount, 0)
	}

	if err := s.cache.Set(key, accounts, s.cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	// счёт изменился, пока шло чтение: результат мог устареть
	if s.version(key) != version {
		s.invalidate(key)
	}
	return accounts, nil
}
