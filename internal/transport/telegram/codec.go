package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

// Inbound событие из апдейта вместе с адресом ответа
type Inbound struct {
	Event      domain.Event
	ChatID     int64
	CallbackID string // пусто для текстовых сообщений
}

// DecodeUpdate разбирает апдейт в событие диалога.
// ok = false для апдейтов, которые бот не обрабатывает (каналы, редактирования, служебные)
func DecodeUpdate(update tgbotapi.Update) (Inbound, bool) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.From == nil {
			return Inbound{}, false
		}

		// У inline-сообщений нет Message, а в личном чате chat id совпадает с user id
		chatID := cb.From.ID
		if cb.Message != nil && cb.Message.Chat != nil {
			chatID = cb.Message.Chat.ID
		}

		return Inbound{
			Event:      domain.DecodeCallback(cb.From.ID, cb.Data),
			ChatID:     chatID,
			CallbackID: cb.ID,
		}, true

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil || msg.Chat == nil {
			return Inbound{}, false
		}

		return Inbound{
			Event:  domain.DecodeText(msg.From.ID, msg.Text),
			ChatID: msg.Chat.ID,
		}, true
	}

	return Inbound{}, false
}

// RenderReply собирает сообщение с кнопками.
// Кнопки выбора выводятся inline-клавиатурой, главное меню обычной клавиатурой
func RenderReply(chatID int64, reply *domain.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, reply.Text)

	switch {
	case reply.HasOptions():
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Options))
		for _, row := range reply.Options {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, opt := range row {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Token))
			}
			rows = append(rows, buttons)
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	case reply.MainMenu:
		keyboard := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(domain.MenuBookLabel),
			),
		)
		keyboard.ResizeKeyboard = true
		msg.ReplyMarkup = keyboard
	}

	return msg
}
