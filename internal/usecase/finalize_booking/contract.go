package finalize_booking

import (
	"context"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	CreateIfNotExists(ctx context.Context, user *domain.User) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
