package handle_event

import (
	"context"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

type EventHandler interface {
	Handle(ctx context.Context, ev domain.Event) (*domain.Reply, error)
}

type RateLimiter interface {
	Allow(userID int64) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
