// Package storage содержит ошибки, общие для всех реализаций хранилища счетов.
package storage

import "errors"

var (
	// ErrAccountNotFound возвращается, если счёт с указанным ID отсутствует.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists возвращается при повторном номере счёта.
	ErrAccountExists = errors.New("account already exists")
)
