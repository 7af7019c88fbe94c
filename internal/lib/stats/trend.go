package stats

import (
	"fmt"
	"time"
)

// Trend — грубая классификация динамики оценок магазина.
type Trend string

const (
	// TrendUp — средняя оценка за последние 30 дней выросла.
	TrendUp Trend = "up"
	// TrendDown — средняя оценка за последние 30 дней упала.
	TrendDown Trend = "down"
	// TrendStable — изменение не выходит за пределы мёртвой зоны.
	TrendStable Trend = "stable"
)

const (
	// WindowDays — длина одного окна сравнения в днях.
	WindowDays = 30
	// Threshold — мёртвая зона, внутри которой тренд считается стабильным.
	Threshold = 0.1
)

// Sample — оценка вместе с моментом её создания.
type Sample struct {
	Value     int
	CreatedAt time.Time
}

// Split делит оценки на два окна относительно now:
// recent — createdAt >= now-30d, previous — now-60d <= createdAt < now-30d.
// Более старые оценки отбрасываются.
func Split(now time.Time, samples []Sample) (recent, previous []int) {
	recentFrom := now.AddDate(0, 0, -WindowDays)
	previousFrom := now.AddDate(0, 0, -2*WindowDays)

	for _, s := range samples {
		switch {
		case !s.CreatedAt.Before(recentFrom):
			recent = append(recent, s.Value)
		case !s.CreatedAt.Before(previousFrom):
			previous = append(previous, s.Value)
		}
	}
	return recent, previous
}

// Classify сравнивает средние двух окон. Неравенства строгие:
// разница ровно в Threshold даёт TrendStable.
func Classify(recentAverage, previousAverage float64) Trend {
	switch {
	case recentAverage > previousAverage+Threshold:
		return TrendUp
	case recentAverage < previousAverage-Threshold:
		return TrendDown
	default:
		return TrendStable
	}
}

// ClassifyTrend вычисляет тренд набора оценок на момент now.
//
// Пустое окно даёт среднее 0, поэтому магазин младше 60 дней с любой
// оценкой выше 0.1 в последнем окне получает TrendUp.
func ClassifyTrend(now time.Time, samples []Sample) (Trend, error) {
	const op = "stats.ClassifyTrend"

	recent, previous := Split(now, samples)
	recentSummary, err := Aggregate(recent)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	previousSummary, err := Aggregate(previous)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return Classify(recentSummary.Average, previousSummary.Average), nil
}

// Values извлекает значения оценок из набора Sample.
func Values(samples []Sample) []int {
	values := make([]int, 0, len(samples))
	for _, s := range samples {
		values = append(values, s.Value)
	}
	return values
}
