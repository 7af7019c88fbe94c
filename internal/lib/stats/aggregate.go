// Package stats содержит чистые функции агрегации оценок магазинов:
// среднее значение и количество оценок, округление до десятых и
// классификацию тренда по двум соседним 30-дневным окнам.
//
// Функции пакета не обращаются к хранилищу и не имеют состояния,
// поэтому их можно вызывать из любого обработчика без синхронизации.
package stats

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinValue — минимально допустимая оценка.
	MinValue = 1
	// MaxValue — максимально допустимая оценка.
	MaxValue = 5
)

// ErrValueOutOfRange возвращается, если в агрегацию попала оценка вне диапазона [1,5].
var ErrValueOutOfRange = errors.New("rating value out of range")

// Summary — результат агрегации набора оценок.
type Summary struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"totalRatings"`
}

// Sum возвращает сумму оценок, восстановленную из среднего.
func (s Summary) Sum() float64 {
	return s.Average * float64(s.Count)
}

// Rounded возвращает копию Summary со средним, округлённым до десятых.
func (s Summary) Rounded() Summary {
	return Summary{Average: RoundTenth(s.Average), Count: s.Count}
}

// Aggregate вычисляет среднее и количество оценок.
//
// Для пустого набора возвращается нулевое среднее. Значения вне [1,5]
// не обрезаются, а приводят к ошибке ErrValueOutOfRange.
func Aggregate(values []int) (Summary, error) {
	const op = "stats.Aggregate"
	if len(values) == 0 {
		return Summary{}, nil
	}

	sum := 0
	for _, v := range values {
		if err := Validate(v); err != nil {
			return Summary{}, fmt.Errorf("%s: %w", op, err)
		}
		sum += v
	}
	return Summary{
		Average: float64(sum) / float64(len(values)),
		Count:   len(values),
	}, nil
}

// Validate проверяет, что оценка лежит в диапазоне [MinValue, MaxValue].
func Validate(value int) error {
	if value < MinValue || value > MaxValue {
		return fmt.Errorf("%w: %d", ErrValueOutOfRange, value)
	}
	return nil
}

// RoundTenth округляет значение до одного знака после запятой, половина вверх.
// Применяется только при выдаче результата клиенту.
func RoundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
