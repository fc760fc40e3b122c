// Package scheduler собирает приложение планировщика поздравлений.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/savings-accounts/internal/app/bootstrap"
	"github.com/magabrotheeeer/savings-accounts/internal/config"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
	schedulerservice "github.com/magabrotheeeer/savings-accounts/internal/services/scheduler"
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.Service
	publisher        *rabbitmq.Publisher
	deps             *bootstrap.Deps
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	deps, err := bootstrap.Open(ctx, cfg, logger, false)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, err
	}

	service := schedulerservice.NewService(deps.Repo, deps.Marker, cfg.Interval, cfg.Location(), logger)

	return &App{
		schedulerService: service,
		publisher:        rabbitmq.NewPublisher(ch, rabbitmq.Exchange),
		deps:             deps,
		conn:             conn,
		ch:               ch,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает планировщик и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.schedulerService.Run(ctx, a.publisher)

	a.logger.Info("shutting down scheduler service")
	closeResources(a.ch, a.conn, a.logger)
	a.deps.Close(a.logger)
	return nil
}
