// Package events публикует доменные события сервиса (регистрация пользователя,
// новый магазин, новая или изменённая оценка) в topic exchange RabbitMQ.
//
// Публикация не входит в транзакцию записи: ошибка отправки события не
// отменяет уже сохранённую запись, вызывающий код только логирует её.
package events

import (
	"context"
	"time"
)

// Type — тип события, он же routing key.
type Type string

const (
	// UserCreated — зарегистрирован или создан пользователь.
	UserCreated Type = "user.created"
	// StoreCreated — создан магазин.
	StoreCreated Type = "store.created"
	// RatingCreated — поставлена новая оценка.
	RatingCreated Type = "rating.created"
	// RatingUpdated — изменена существующая оценка.
	RatingUpdated Type = "rating.updated"
)

// Event — сообщение, уходящее в брокер.
type Event struct {
	Type       Type      `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// New создаёт событие с текущим временем.
func New(t Type, id string, data any) Event {
	return Event{
		Type:       t,
		ID:         id,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher отправляет события.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop — публикатор, который ничего не отправляет. Используется,
// когда брокер не настроен.
type Noop struct{}

// Publish ничего не делает.
func (Noop) Publish(context.Context, Event) error { return nil }
