// Package memory реализует хранилище счетов в памяти процесса.
// Используется для локального запуска (storage.driver: memory) и в тестах.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/magabrotheeeer/savings-accounts/internal/lib/birthday"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
)

// Storage хранит счета в map, порядок выдачи по возрастанию ID.
type Storage struct {
	mu       sync.RWMutex
	nextID   int
	accounts map[int]models.SavingsAccount
	ids      []int
	now      func() time.Time
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		nextID:   1,
		accounts: make(map[int]models.SavingsAccount),
		now:      time.Now,
	}
}

// Create сохраняет счёт и возвращает присвоенный ID.
func (s *Storage) Create(ctx context.Context, account models.SavingsAccount) (int, error) {
	const op = "memory.Create"
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accountNoTakenLocked(account.AccountNo, 0) {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrAccountExists)
	}

	account.ID = s.nextID
	account.CreatedAt = s.now().UTC()
	s.nextID++
	s.accounts[account.ID] = account
	s.ids = append(s.ids, account.ID)
	return account.ID, nil
}

// Read возвращает копию счёта по ID.
func (s *Storage) Read(ctx context.Context, id int) (*models.SavingsAccount, error) {
	const op = "memory.Read"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	return &account, nil
}

// Update заменяет изменяемые поля счёта. ID, ExternalID и CreatedAt сохраняются.
func (s *Storage) Update(ctx context.Context, account models.SavingsAccount, id int) (int, error) {
	const op = "memory.Update"
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[id]
	if !ok {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	if s.accountNoTakenLocked(account.AccountNo, id) {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrAccountExists)
	}

	account.ID = current.ID
	account.ExternalID = current.ExternalID
	account.CreatedAt = current.CreatedAt
	s.accounts[id] = account
	return 1, nil
}

// Remove удаляет счёт по ID.
func (s *Storage) Remove(ctx context.Context, id int) (int, error) {
	const op = "memory.Remove"
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	delete(s.accounts, id)
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
	return 1, nil
}

// List возвращает страницу счетов по возрастанию ID.
func (s *Storage) List(ctx context.Context, limit, offset int) ([]*models.SavingsAccount, error) {
	const op = "memory.List"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.SavingsAccount, 0)
	if offset < 0 || offset >= len(s.ids) || limit <= 0 {
		return result, nil
	}
	end := min(offset+limit, len(s.ids))
	for _, id := range s.ids[offset:end] {
		account := s.accounts[id]
		result = append(result, &account)
	}
	return result, nil
}

// ListByBirthday возвращает счета, подходящие под фильтр, по возрастанию ID.
func (s *Storage) ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error) {
	const op = "memory.ListByBirthday"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	snapshot := make([]models.SavingsAccount, 0, len(s.ids))
	for _, id := range s.ids {
		snapshot = append(snapshot, s.accounts[id])
	}
	s.mu.RUnlock()

	matched := birthday.Filter(snapshot, filter)
	result := make([]*models.SavingsAccount, 0, len(matched))
	for i := range matched {
		result = append(result, &matched[i])
	}
	return result, nil
}

func (s *Storage) accountNoTakenLocked(accountNo string, exceptID int) bool {
	for id, a := range s.accounts {
		if id != exceptID && a.AccountNo == accountNo {
			return true
		}
	}
	return false
}
