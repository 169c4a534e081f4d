package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter token bucket на каждого пользователя
type Limiter struct {
	mu       sync.Mutex
	limiters map[int64]*entry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New создает лимитер: perMinute событий в минуту с запасом burst.
// perMinute <= 0 отключает ограничение
func New(perMinute, burst int) *Limiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters: make(map[int64]*entry),
		limit:    limit,
		burst:    burst,
		now:      time.Now,
	}
}

// Allow сообщает, можно ли обработать еще одно событие пользователя
func (l *Limiter) Allow(key int64) bool {
	if l.limit == rate.Inf {
		return true
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

// Cleanup удаляет лимитеры пользователей, которые молчат дольше idle
func (l *Limiter) Cleanup(idle time.Duration) int {
	cutoff := l.now().Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len количество отслеживаемых пользователей
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
