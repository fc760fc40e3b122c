// Package models содержит доменные структуры сберегательного счёта,
// параметры фильтрации и сообщения, которыми обмениваются сервисы.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Статусы сберегательного счёта.
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusClosed  = "closed"
)

// SavingsAccount представляет сберегательный счёт клиента вместе с датой рождения
// владельца. День, месяц и год рождения хранятся раздельно, так как по ним
// выполняется фильтрация.
type SavingsAccount struct {
	ID          int             `json:"id"`
	ExternalID  uuid.UUID       `json:"externalId"`
	AccountNo   string          `json:"accountNo"`
	ClientID    int64           `json:"clientId"`
	ClientName  string          `json:"clientName"`
	ClientEmail string          `json:"clientEmail"`
	ProductName string          `json:"productName"`
	Status      string          `json:"status"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	BirthDay    int             `json:"birthDay"`
	BirthMonth  int             `json:"birthMonth"`
	BirthYear   int             `json:"birthYear"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DummyAccount используется для приёма данных счёта из JSON-запроса
// до валидации и преобразования в SavingsAccount. Баланс приходит строкой,
// чтобы не терять точность.
type DummyAccount struct {
	AccountNo   string `json:"accountNo" validate:"required,alphanum"`
	ClientID    int64  `json:"clientId" validate:"required,gt=0"`
	ClientName  string `json:"clientName" validate:"required"`
	ClientEmail string `json:"clientEmail" validate:"required,email"`
	ProductName string `json:"productName" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=active pending closed"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Balance     string `json:"balance" validate:"omitempty,numeric"`
	BirthDay    int    `json:"birthDay" validate:"required,min=1,max=31"`
	BirthMonth  int    `json:"birthMonth" validate:"required,min=1,max=12"`
	BirthYear   int    `json:"birthYear" validate:"required,min=1900,max=9999"`
}
