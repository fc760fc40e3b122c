package cache

import "time"

// Nop используется, когда Redis не настроен: ничего не хранит.
// Отметки планировщика в этом режиме ведёт Marks.
type Nop struct{}

// Get всегда сообщает о промахе.
func (Nop) Get(string, any) (bool, error) { return false, nil }

// Set ничего не сохраняет.
func (Nop) Set(string, any, time.Duration) error { return nil }

// Invalidate ничего не делает.
func (Nop) Invalidate(...string) error { return nil }

// Close ничего не делает.
func (Nop) Close() error { return nil }
