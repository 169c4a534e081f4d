package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingBot/internal/conversation"
	"github.com/m04kA/SMC-BookingBot/internal/domain"
	"github.com/m04kA/SMC-BookingBot/pkg/logger"
	"github.com/m04kA/SMC-BookingBot/pkg/ratelimit"
)

type fakeAPI struct {
	updates chan tgbotapi.Update

	mu        sync.Mutex
	sent      []tgbotapi.MessageConfig
	callbacks []string
	stopped   bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update, 16)}
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.callbacks = append(f.callbacks, cb.CallbackQueryID)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) sentMessages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

type handlerFunc func(ctx context.Context, ev domain.Event) (*domain.Reply, error)

func (h handlerFunc) Handle(ctx context.Context, ev domain.Event) (*domain.Reply, error) {
	return h(ctx, ev)
}

type droppedCounter struct {
	mu sync.Mutex
	n  int
}

func (d *droppedCounter) ObserveDroppedEvent() {
	d.mu.Lock()
	d.n++
	d.mu.Unlock()
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}}
}

func callbackUpdate(userID int64, id, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      id,
		From:    &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: userID}},
		Data:    data,
	}}
}

func TestDecodeUpdate(t *testing.T) {
	in, ok := DecodeUpdate(textUpdate(7, "/book@smc_bot"))
	require.True(t, ok)
	assert.Equal(t, domain.EventStart, in.Event.Kind)
	assert.Equal(t, int64(7), in.ChatID)
	assert.Empty(t, in.CallbackID)

	in, ok = DecodeUpdate(callbackUpdate(7, "cb-1", domain.YearToken(2020)))
	require.True(t, ok)
	assert.Equal(t, domain.EventYearSelected, in.Event.Kind)
	assert.Equal(t, "2020", in.Event.Value)
	assert.Equal(t, "cb-1", in.CallbackID)

	// inline-сообщение без Message отвечает в личный чат
	in, ok = DecodeUpdate(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID: "cb-2", From: &tgbotapi.User{ID: 9}, Data: domain.ConfirmYesToken(),
	}})
	require.True(t, ok)
	assert.Equal(t, int64(9), in.ChatID)

	_, ok = DecodeUpdate(tgbotapi.Update{EditedMessage: &tgbotapi.Message{Text: "x"}})
	assert.False(t, ok)

	_, ok = DecodeUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "x"}})
	assert.False(t, ok)
}

func TestRenderReply(t *testing.T) {
	msg := RenderReply(5, &domain.Reply{
		Text: "choose",
		Options: [][]domain.Option{
			{{Label: "A", Token: "svc:a"}, {Label: "B", Token: "svc:b"}},
			{{Label: "C", Token: "svc:c"}},
		},
	})

	assert.Equal(t, int64(5), msg.ChatID)
	assert.Equal(t, "choose", msg.Text)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	require.NotNil(t, markup.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "svc:c", *markup.InlineKeyboard[1][0].CallbackData)

	msg = RenderReply(5, &domain.Reply{Text: "menu", MainMenu: true})
	keyboard, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, keyboard.ResizeKeyboard)
	assert.Equal(t, domain.MenuBookLabel, keyboard.Keyboard[0][0].Text)

	msg = RenderReply(5, &domain.Reply{Text: "plain"})
	assert.Nil(t, msg.ReplyMarkup)
}

func runBot(t *testing.T, bot *Bot, api *fakeAPI, updates ...tgbotapi.Update) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	for _, u := range updates {
		api.updates <- u
	}

	require.Eventually(t, func() bool {
		return len(api.sentMessages()) == len(updates)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
}

func TestBot_Run(t *testing.T) {
	api := newFakeAPI()

	var mu sync.Mutex
	var got []domain.Event
	handler := handlerFunc(func(_ context.Context, ev domain.Event) (*domain.Reply, error) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		return &domain.Reply{Text: "ok"}, nil
	})

	bot := NewBot(api, handler, ratelimit.New(0, 0), &droppedCounter{}, Config{Workers: 2}, logger.NewNop())
	runBot(t, bot, api, textUpdate(1, "Иван"), callbackUpdate(2, "cb-9", domain.ConfirmNoToken()))

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 2)
	assert.Contains(t, api.callbacks, "cb-9")
	assert.True(t, api.stopped)
}

func TestBot_HandlerErrorSendsFallback(t *testing.T) {
	api := newFakeAPI()
	handler := handlerFunc(func(context.Context, domain.Event) (*domain.Reply, error) {
		return nil, errors.New("store down")
	})

	bot := NewBot(api, handler, nil, nil, Config{}, logger.NewNop())
	runBot(t, bot, api, textUpdate(1, "Иван"))

	sent := api.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, conversation.ErrorReply().Text, sent[0].Text)
}

func TestBot_RateLimitDropsEvents(t *testing.T) {
	api := newFakeAPI()
	dropped := &droppedCounter{}
	calls := 0
	handler := handlerFunc(func(context.Context, domain.Event) (*domain.Reply, error) {
		calls++
		return &domain.Reply{Text: "ok"}, nil
	})

	bot := NewBot(api, handler, ratelimit.New(1, 1), dropped, Config{Workers: 1}, logger.NewNop())

	ctx := context.Background()
	bot.handleUpdate(ctx, textUpdate(1, "a"))
	bot.handleUpdate(ctx, textUpdate(1, "b"))
	bot.handleUpdate(ctx, textUpdate(2, "c"))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, dropped.n)
	assert.Len(t, api.sentMessages(), 2)
}
