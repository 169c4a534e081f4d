package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-BookingBot/internal/conversation"
)

const (
	defaultUpdateTimeout = 60
	defaultWorkers       = 16
)

// Config настройки long polling
type Config struct {
	UpdateTimeout int // секунды
	Workers       int // одновременно обрабатываемые апдейты
}

// Bot получает апдейты и передает их автомату диалога
type Bot struct {
	api     API
	handler EventHandler
	limiter RateLimiter
	metrics Metrics
	logger  Logger

	updateTimeout int
	workers       int
}

// NewBot создает новый экземпляр бота
func NewBot(api API, handler EventHandler, limiter RateLimiter, metrics Metrics, cfg Config, logger Logger) *Bot {
	if cfg.UpdateTimeout <= 0 {
		cfg.UpdateTimeout = defaultUpdateTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}

	return &Bot{
		api:           api,
		handler:       handler,
		limiter:       limiter,
		metrics:       metrics,
		logger:        logger,
		updateTimeout: cfg.UpdateTimeout,
		workers:       cfg.Workers,
	}
}

// Run читает апдейты до отмены контекста и дожидается обработки начатых
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Telegram bot started, workers=%d", b.workers)

	sem := make(chan struct{}, b.workers)
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Telegram bot stopping")
			return nil

		case update, ok := <-updates:
			if !ok {
				b.logger.Warn("Telegram updates channel closed")
				return nil
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				return nil
			}

			wg.Add(1)
			go func(update tgbotapi.Update) {
				defer wg.Done()
				defer func() { <-sem }()
				b.handleUpdate(ctx, update)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// 1. Разбираем апдейт
	in, ok := DecodeUpdate(update)
	if !ok {
		return
	}

	// 2. Убираем "часики" на кнопке сразу
	if in.CallbackID != "" {
		if _, err := b.api.Request(tgbotapi.NewCallback(in.CallbackID, "")); err != nil {
			b.logger.Warn("Telegram: failed to answer callback for user=%d: %v", in.Event.UserID, err)
		}
	}

	// 3. Ограничение частоты
	if b.limiter != nil && !b.limiter.Allow(in.Event.UserID) {
		if b.metrics != nil {
			b.metrics.ObserveDroppedEvent()
		}
		b.logger.Warn("Telegram: rate limit exceeded for user=%d, event=%s dropped", in.Event.UserID, in.Event.Kind)
		return
	}

	// 4. Автомат диалога
	reply, err := b.handler.Handle(ctx, in.Event)
	if err != nil {
		b.logger.Error("Telegram: failed to handle event=%s for user=%d: %v", in.Event.Kind, in.Event.UserID, err)
		reply = conversation.ErrorReply()
	}

	// 5. Ответ
	if _, err := b.api.Send(RenderReply(in.ChatID, reply)); err != nil {
		b.logger.Error("Telegram: failed to send reply to chat=%d: %v", in.ChatID, err)
	}
}
