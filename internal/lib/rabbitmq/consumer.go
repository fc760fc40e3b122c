package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/savings-accounts/internal/lib/sl"
)

const maxInFlight = 10

// ConsumeMessages запускает потребителя очереди. Каждое сообщение передаётся в handler;
// при ошибке сообщение возвращается в очередь, иначе подтверждается.
// Одновременно обрабатывается не больше maxInFlight сообщений.
// Возвращённый канал закрывается после отмены ctx, когда все начатые обработчики завершились.
func ConsumeMessages(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler func([]byte) error) (<-chan struct{}, error) {
	const op = "rabbitmq.ConsumeMessages"
	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		dispatch(ctx, deliveries, log, handler)
	}()
	return done, nil
}

// Acknowledger часть amqp.Delivery, нужная для подтверждения.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func dispatch(ctx context.Context, deliveries <-chan amqp.Delivery, log *slog.Logger, handler func([]byte) error) {
	sem := make(chan struct{}, maxInFlight)
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				if err := d.Nack(false, true); err != nil {
					log.Error("failed to requeue message on shutdown", sl.Err(err))
				}
				return
			}
			wg.Add(1)
			go func(d amqp.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()
				handle(d, d.Body, log, handler)
			}(d)
		case <-ctx.Done():
			return
		}
	}
}

func handle(ack Acknowledger, body []byte, log *slog.Logger, handler func([]byte) error) {
	if err := handler(body); err != nil {
		log.Error("failed to handle message, requeue", sl.Err(err))
		if nackErr := ack.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := ack.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
