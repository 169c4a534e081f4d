package conversation

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
	"github.com/m04kA/SMC-BookingBot/internal/usecase/finalize_booking"
	"github.com/m04kA/SMC-BookingBot/internal/validation"
)

const (
	textWelcome = "👋 Здравствуйте! Это бот записи в автосервис.\n\n" +
		"Нажмите «" + domain.MenuBookLabel + "», чтобы выбрать услугу и удобное время."
	textNoSession       = "Чтобы записаться, нажмите «" + domain.MenuBookLabel + "»."
	textSessionExpired  = "⌛️ Сессия устарела. Нажмите «" + domain.MenuBookLabel + "», чтобы начать заново."
	textNothingToCancel = "Активной записи нет. " + textNoSession
	textCancelled       = "🔄 Запись отменена. Нажмите «" + domain.MenuBookLabel + "», чтобы начать заново."
	textSomethingWrong  = "⚠️ Что-то пошло не так. Нажмите «" + domain.MenuBookLabel + "», чтобы начать заново."
	textRetry           = "⚠️ Не удалось сохранить запись. Попробуйте подтвердить еще раз через минуту."

	textChooseService = "📋 На какую услугу вы хотите записаться?\n\nВыберите один из вариантов ниже:"
	textAskFullName   = "👤 Напишите ваши фамилию и имя полностью:\n\nНапример: Сериков Айбек"
	textAskPhone      = "📞 Напишите ваш номер телефона:\n\nФормат: +7 777 123 45 67 или 87771234567"
	textChooseMake    = "🚘 Выберите марку автомобиля:"
	textAskCustomMake = "✏️ Напишите марку автомобиля:"
	textChooseYear    = "📅 Выберите год выпуска автомобиля:"
	textAskCustomYear = "✏️ Напишите год выпуска автомобиля (например: 2015):"
	textAskDateTime   = "📅 В какой день и время вам удобно приехать?\n\n" +
		"Формат: ДД.ММ.ГГГГ, ЧЧ:ММ\nНапример: 25.05.2024, 14:00"

	textUseButtons = "Пожалуйста, выберите вариант кнопкой ниже."
	textUseText    = "Пожалуйста, отправьте ответ сообщением."

	labelOther      = "✏️ Другое"
	labelConfirmYes = "✅ Да, подтверждаю"
	labelConfirmNo  = "🔄 Заполнить заново"
)

func menuReply(text string) *domain.Reply {
	return &domain.Reply{Text: text, MainMenu: true}
}

// ErrorReply ответ пользователю при внутренней ошибке
func ErrorReply() *domain.Reply {
	return menuReply(textSomethingWrong)
}

func (m *Machine) serviceKeyboard() [][]domain.Option {
	rows := make([][]domain.Option, 0, len(m.catalog.Services))
	for _, s := range m.catalog.Services {
		rows = append(rows, []domain.Option{{Label: s.Name, Token: domain.ServiceToken(s.Key)}})
	}
	return rows
}

func (m *Machine) makeKeyboard() [][]domain.Option {
	opts := make([]domain.Option, 0, len(m.catalog.CarMakes))
	for _, carMake := range m.catalog.CarMakes {
		opts = append(opts, domain.Option{Label: carMake, Token: domain.MakeToken(carMake)})
	}
	rows := chunk(opts, m.catalog.MakesPerRow)
	return append(rows, []domain.Option{{Label: labelOther, Token: domain.MakeOtherToken()}})
}

func (m *Machine) yearKeyboard(now time.Time) [][]domain.Option {
	years := m.catalog.RecentYears(now)
	opts := make([]domain.Option, 0, len(years))
	for _, y := range years {
		opts = append(opts, domain.Option{Label: strconv.Itoa(y), Token: domain.YearToken(y)})
	}
	rows := chunk(opts, m.catalog.YearsPerRow)
	return append(rows, []domain.Option{{Label: labelOther, Token: domain.YearOtherToken()}})
}

func confirmKeyboard() [][]domain.Option {
	return [][]domain.Option{{
		{Label: labelConfirmYes, Token: domain.ConfirmYesToken()},
		{Label: labelConfirmNo, Token: domain.ConfirmNoToken()},
	}}
}

func chunk(opts []domain.Option, size int) [][]domain.Option {
	if size <= 0 {
		size = 3
	}
	rows := make([][]domain.Option, 0, (len(opts)+size-1)/size)
	for size < len(opts) {
		opts, rows = opts[size:], append(rows, opts[:size])
	}
	if len(opts) > 0 {
		rows = append(rows, opts)
	}
	return rows
}

// prompt вопрос текущего шага вместе с кнопками
func (m *Machine) prompt(sess *domain.Session, now time.Time) *domain.Reply {
	switch sess.State {
	case domain.StateService:
		return &domain.Reply{Text: textChooseService, Options: m.serviceKeyboard()}
	case domain.StateFullName:
		return &domain.Reply{Text: textAskFullName}
	case domain.StatePhone:
		return &domain.Reply{Text: textAskPhone}
	case domain.StateCarMake:
		return &domain.Reply{Text: textChooseMake, Options: m.makeKeyboard()}
	case domain.StateCustomMake:
		return &domain.Reply{Text: textAskCustomMake}
	case domain.StateCarYear:
		return &domain.Reply{Text: textChooseYear, Options: m.yearKeyboard(now)}
	case domain.StateCustomYear:
		return &domain.Reply{Text: textAskCustomYear}
	case domain.StateDateTime:
		return &domain.Reply{Text: textAskDateTime}
	case domain.StateConfirm:
		return &domain.Reply{Text: m.summary(sess.Fields), Options: confirmKeyboard()}
	default:
		return ErrorReply()
	}
}

// summary текст для финального подтверждения
func (m *Machine) summary(f domain.BookingFields) string {
	return fmt.Sprintf("📝 Ваша запись:\n\n"+
		"Услуга: %s\n"+
		"ФИО: %s\n"+
		"Телефон: %s\n"+
		"Автомобиль: %s %d\n"+
		"Время: %s\n\n"+
		"Все верно?",
		f.Service, f.FullName, f.Phone, f.CarMake, f.CarYear,
		f.BookingTime.On(f.BookingDate).Format(domain.SlotFormat))
}

// confirmation сообщение об успешной записи
func (m *Machine) confirmation(resp *finalize_booking.Response) string {
	return fmt.Sprintf("✅ Вы успешно записаны!\n\n"+
		"Номер записи: #%d\n"+
		"Дата: %s, время %s\n\n"+
		"📍 Адрес: %s\n"+
		"📞 Телефон: %s\n\n"+
		"Ждем вас!",
		resp.BookingID, resp.Date.Format(domain.UserDateFormat), resp.Time,
		m.shop.Address, m.shop.Phone)
}

// rejectionText пояснение к отклоненному ответу
func (m *Machine) rejectionText(err error, now time.Time) string {
	switch {
	case errors.Is(err, errUnexpectedEvent):
		return ""
	case errors.Is(err, validation.ErrServiceUnknown):
		return "❌ Такой услуги нет. Выберите услугу из списка."
	case errors.Is(err, validation.ErrNameInvalid):
		return "❌ Имя указано неверно. Используйте только буквы и пробелы.\nНапишите еще раз:"
	case errors.Is(err, validation.ErrPhoneInvalid):
		return "❌ Неверный формат! Напишите телефон правильно:\n+7 777 123 45 67 или 87771234567"
	case errors.Is(err, validation.ErrMakeUnknown):
		return "❌ Такой марки нет в списке. Выберите марку или нажмите «" + labelOther + "»."
	case errors.Is(err, validation.ErrMakeTooShort):
		return "❌ Название марки слишком короткое. Напишите еще раз:"
	case errors.Is(err, validation.ErrYearNotNumber):
		return "❌ Год должен быть числом. Напишите еще раз:"
	case errors.Is(err, validation.ErrYearOutOfRange):
		return fmt.Sprintf("❌ Год должен быть в диапазоне %d-%d. Напишите еще раз:",
			domain.MinCarYear, validation.MaxCarYear(now))
	case errors.Is(err, validation.ErrDateTimeFormat):
		return "❌ Неверный формат! Напишите как в примере:\n25.05.2024, 14:00"
	case errors.Is(err, validation.ErrDateTimeInvalid):
		return "❌ Такой даты не существует! Например: 25.05.2024, 14:00"
	case errors.Is(err, validation.ErrPastDate):
		return "❌ Нельзя записаться на прошедшую дату. Выберите будущий день."
	case errors.Is(err, validation.ErrTimeElapsed):
		return "❌ На сегодня время должно быть позже текущего."
	case errors.Is(err, validation.ErrOutsideWorkingHours):
		return fmt.Sprintf("❌ Мы работаем с %02d:00 до %02d:00. Выберите другое время.",
			m.schedule.StartHour, m.schedule.EndHour)
	case errors.Is(err, validation.ErrClosedDay):
		return "❌ В этот день у нас выходной. Выберите другой день."
	default:
		return "❌ Не удалось принять ответ. Попробуйте еще раз."
	}
}
