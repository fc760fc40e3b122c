package cache

import (
	"sync"
	"time"
)

// Marks хранит отметки планировщика в памяти процесса, когда Redis не настроен.
// Отметки не переживают перезапуск.
type Marks struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMarks создает пустое хранилище отметок.
func NewMarks() *Marks {
	return &Marks{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// SetNX ставит отметку по ключу, если её ещё нет или она истекла.
// Возвращает true, если отметка поставлена сейчас.
func (m *Marks) SetNX(key string, expiration time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.expires {
		if !now.Before(exp) {
			delete(m.expires, k)
		}
	}
	if _, ok := m.expires[key]; ok {
		return false, nil
	}
	m.expires[key] = now.Add(expiration)
	return true, nil
}

// Invalidate снимает отметки.
func (m *Marks) Invalidate(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.expires, k)
	}
	return nil
}
