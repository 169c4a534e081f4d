// Package mocks содержит testify-моки зависимостей finalize_booking
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

// UserRepository мок репозитория пользователей
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateIfNotExists(ctx context.Context, user *domain.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

// BookingRepository мок репозитория бронирований
type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

// TxManager выполняет функцию без транзакции и считает вызовы
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Logger логгер, который ничего не пишет
type Logger struct{}

func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
