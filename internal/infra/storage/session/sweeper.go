package session

import (
	"context"
	"time"
)

// Sweepable хранилище, которое умеет удалять истекшие сессии и считать активные
type Sweepable interface {
	Sweep(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// Gauge принимает количество активных сессий
type Gauge interface {
	SetActiveSessions(n int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически чистит хранилище и обновляет метрику активных сессий
type Sweeper struct {
	store    Sweepable
	gauge    Gauge
	interval time.Duration
	logger   Logger
}

func NewSweeper(store Sweepable, gauge Gauge, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		gauge:    gauge,
		interval: interval,
		logger:   logger,
	}
}

// Run работает до отмены контекста
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce один проход очистки
func (s *Sweeper) SweepOnce(ctx context.Context) {
	removed, err := s.store.Sweep(ctx)
	if err != nil {
		s.logger.Error("SessionSweeper: sweep failed: %v", err)
		return
	}
	if removed > 0 {
		s.logger.Info("SessionSweeper: removed %d expired sessions", removed)
	}

	if s.gauge == nil {
		return
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Error("SessionSweeper: count failed: %v", err)
		return
	}
	s.gauge.SetActiveSessions(n)
}
