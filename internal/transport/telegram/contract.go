package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

// EventHandler интерфейс автомата диалога
type EventHandler interface {
	Handle(ctx context.Context, ev domain.Event) (*domain.Reply, error)
}

// API подмножество методов tgbotapi.BotAPI, которые использует бот
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// RateLimiter ограничивает частоту событий одного пользователя
type RateLimiter interface {
	Allow(userID int64) bool
}

// Metrics интерфейс для метрик транспорта
type Metrics interface {
	ObserveDroppedEvent()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
