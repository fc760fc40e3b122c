// Package sender отправляет поздравления с днём рождения владельцам счетов.
package sender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/smtp"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
)

// ErrNoRecipient сообщение без адреса получателя.
var ErrNoRecipient = errors.New("greeting has no recipient email")

// Transport выдаёт готовое к отправке SMTP соединение.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// Service отправляет письма через Transport.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(transport Transport, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendBirthdayGreeting разбирает сообщение из очереди и отправляет письмо.
// Ошибка означает, что сообщение нужно вернуть в очередь.
func (s *Service) SendBirthdayGreeting(body []byte) error {
	const op = "sender.SendBirthdayGreeting"

	var greeting models.BirthdayGreeting
	if err := json.Unmarshal(body, &greeting); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if greeting.ClientEmail == "" {
		return fmt.Errorf("%s: account %d: %w", op, greeting.AccountID, ErrNoRecipient)
	}

	subject := "С днём рождения!"
	text := fmt.Sprintf("Здравствуйте, %s!\n\nПоздравляем вас с днём рождения!\n\n"+
		"Спасибо, что храните сбережения на счёте %s (%s).",
		greeting.ClientName, greeting.AccountNo, greeting.ProductName)

	if err := s.sendEmail([]string{greeting.ClientEmail}, subject, text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("birthday greeting sent",
		slog.Int("account_id", greeting.AccountID),
		slog.String("date", greeting.Date),
	)
	return nil
}

func (s *Service) sendEmail(to []string, subject, text string) error {
	from := s.transport.GetSMTPUser()
	msg := smtp.BuildMessage(from, to, subject, text)

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write(msg); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}
	return nil
}
