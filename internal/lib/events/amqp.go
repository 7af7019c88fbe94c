package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Connect подключается к RabbitMQ, повторяя попытку retries раз с паузой delay.
func Connect(url string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "events.Connect"
	var (
		conn *amqp.Connection
		err  error
	)

	for attempt := range retries {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		if attempt < retries-1 {
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}

// AMQPPublisher публикует события в durable topic exchange.
// Канал AMQP не потокобезопасен, поэтому публикация сериализуется мьютексом.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher открывает канал и объявляет exchange.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (*AMQPPublisher, error) {
	const op = "events.NewAMQPPublisher"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &AMQPPublisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
	}, nil
}

// Publish сериализует событие в JSON и отправляет его с routing key, равным типу.
func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	const op = "events.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(
		p.exchange,
		string(e.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    e.ID,
			Timestamp:    e.OccurredAt,
			Type:         string(e.Type),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chErr := p.ch.Close()
	if err := p.conn.Close(); err != nil {
		return err
	}
	return chErr
}
