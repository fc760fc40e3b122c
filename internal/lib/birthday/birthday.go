// Package birthday реализует сравнение счетов с датой рождения клиента
// и вспомогательные календарные функции.
package birthday

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/savings-accounts/internal/models"
)

// Matches сообщает, подходит ли счёт под фильтр. Без года сравниваются день и месяц,
// с годом все три поля. Значения фильтра не проверяются: день 32 просто ни с чем не совпадёт.
func Matches(a models.SavingsAccount, f models.BirthdayFilter) bool {
	if a.BirthDay != f.Day || a.BirthMonth != f.Month {
		return false
	}
	if f.Year != nil {
		return a.BirthYear == *f.Year
	}
	return true
}

// Filter возвращает новый срез со счетами, подходящими под фильтр, в исходном порядке.
// Результат никогда не равен nil.
func Filter(accounts []models.SavingsAccount, f models.BirthdayFilter) []models.SavingsAccount {
	result := make([]models.SavingsAccount, 0)
	for _, a := range accounts {
		if Matches(a, f) {
			result = append(result, a)
		}
	}
	return result
}

// ForDate возвращает фильтры без года, которые считаются днём рождения в дату t.
// В невисокосный год родившиеся 29 февраля поздравляются 28 февраля.
func ForDate(t time.Time) []models.BirthdayFilter {
	filters := []models.BirthdayFilter{{Day: t.Day(), Month: int(t.Month())}}
	if t.Month() == time.February && t.Day() == 28 && !isLeap(t.Year()) {
		filters = append(filters, models.BirthdayFilter{Day: 29, Month: int(time.February)})
	}
	return filters
}

// ValidDate проверяет, что день, месяц и год образуют существующую дату.
func ValidDate(day, month, year int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Day() == day && int(d.Month()) == month && d.Year() == year
}

// CacheKey строит ключ кеша для результата выборки по фильтру.
func CacheKey(f models.BirthdayFilter) string {
	if f.Year != nil {
		return fmt.Sprintf("savings:birthday:%d:%d:%d", f.Day, f.Month, *f.Year)
	}
	return fmt.Sprintf("savings:birthday:%d:%d", f.Day, f.Month)
}

// CacheKeys возвращает оба ключа кеша, в которые может попасть счёт:
// выборку без года и выборку с его годом рождения.
func CacheKeys(a models.SavingsAccount) []string {
	year := a.BirthYear
	return []string{
		CacheKey(models.BirthdayFilter{Day: a.BirthDay, Month: a.BirthMonth}),
		CacheKey(models.BirthdayFilter{Day: a.BirthDay, Month: a.BirthMonth, Year: &year}),
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
