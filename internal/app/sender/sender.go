// Package sender собирает приложение, которое отправляет поздравления из очереди.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/savings-accounts/internal/config"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/savings-accounts/internal/services/sender"
)

// App представляет приложение отправки поздравлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New подключается к RabbitMQ и готовит SMTP-транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.NewService(transport, logger),
		logger:        logger,
	}, nil
}

// Run читает очередь поздравлений до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	done, err := rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.BirthdayQueue, a.logger, a.senderService.SendBirthdayGreeting)
	if err != nil {
		a.logger.Error("failed to start birthday consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")
	// канал закрываем только после подтверждения начатых писем
	<-done

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
