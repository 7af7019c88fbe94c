package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL — через сколько неактивный клиент удаляется из памяти.
const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Local — token bucket на каждый ключ в памяти процесса.
type Local struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewLocal создаёт ограничитель с пополнением limit токенов в секунду и ёмкостью burst.
func NewLocal(limit rate.Limit, burst int) *Local {
	return &Local{
		visitors:  make(map[string]*visitor),
		limit:     limit,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// NewLocalWindow приближает фиксированное окно "n запросов за window" token bucket'ом.
func NewLocalWindow(n int, window time.Duration) *Local {
	return NewLocal(rate.Every(window/time.Duration(n)), n)
}

// Allow расходует токен ключа. Ошибку не возвращает никогда.
func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > idleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
