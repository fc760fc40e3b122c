package models

// BirthdayFilter описывает запрос на выборку счетов по дню рождения клиента.
// Year равен nil, если год не задан: тогда сравниваются только день и месяц.
type BirthdayFilter struct {
	Day   int
	Month int
	Year  *int
}

// HasYear сообщает, участвует ли год в сравнении.
func (f BirthdayFilter) HasYear() bool {
	return f.Year != nil
}
