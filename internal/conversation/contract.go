package conversation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
	"github.com/m04kA/SMC-BookingBot/internal/usecase/finalize_booking"
)

// SessionStore интерфейс хранилища сессий
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, userID int64) error
}

// Finalizer интерфейс use case сохранения записи
type Finalizer interface {
	Execute(ctx context.Context, req *finalize_booking.Request) (*finalize_booking.Response, error)
}

// Metrics интерфейс для метрик диалога
type Metrics interface {
	ObserveEvent(kind string)
	ObserveTransition(from, to string)
	ObserveRejection(state, reason string)
	ObserveBookingCreated(d time.Duration)
	ObserveFinalizeFailure(reason string, d time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopMetrics ничего не считает
type NopMetrics struct{}

func (NopMetrics) ObserveEvent(string)                          {}
func (NopMetrics) ObserveTransition(string, string)             {}
func (NopMetrics) ObserveRejection(string, string)              {}
func (NopMetrics) ObserveBookingCreated(time.Duration)          {}
func (NopMetrics) ObserveFinalizeFailure(string, time.Duration) {}
