package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
	"github.com/m04kA/SMC-BookingBot/pkg/types"
)

var dateTimeRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4}),\s*(\d{2}):(\d{2})$`)

// Slot предложенные пользователем дата и время записи
type Slot struct {
	Date time.Time // полночь в локальной зоне
	Time types.TimeString
}

// At момент начала записи
func (s Slot) At() time.Time {
	return s.Time.On(s.Date)
}

// String форматирует слот так же, как его вводит пользователь
func (s Slot) String() string {
	return s.At().Format(domain.SlotFormat)
}

// ParseDateTime разбирает строку "ДД.ММ.ГГГГ, ЧЧ:ММ" в зоне loc
func ParseDateTime(raw string, loc *time.Location) (Slot, error) {
	m := dateTimeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Slot{}, ErrDateTimeFormat
	}

	// Пересобираем каноническую строку: time.ParseInLocation отвергает 13-й месяц, 30 февраля, 24:00
	canonical := fmt.Sprintf("%s.%s.%s, %s:%s", m[1], m[2], m[3], m[4], m[5])
	at, err := time.ParseInLocation(domain.SlotFormat, canonical, loc)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %v", ErrDateTimeInvalid, err)
	}

	return Slot{
		Date: startOfDay(at),
		Time: types.NewTimeString(at),
	}, nil
}

// CheckSlot проверяет бизнес-правила по порядку, останавливаясь на первой ошибке:
// прошедшая дата, прошедшее время сегодня, рабочие часы, выходной день
func CheckSlot(slot Slot, now time.Time, schedule domain.WorkSchedule) error {
	today := startOfDay(now)

	// 1. Дата не в прошлом
	if slot.Date.Before(today) {
		return ErrPastDate
	}

	// 2. Для сегодняшней даты время должно быть позже текущего
	if slot.Date.Equal(today) && !slot.At().After(now) {
		return ErrTimeElapsed
	}

	// 3. Проверяется только час: 19:59 допустимо, 20:00 и 20:45 нет
	if !schedule.IsWorkingHour(slot.Time.Hour()) {
		return fmt.Errorf("%w: %02d:00-%02d:00", ErrOutsideWorkingHours, schedule.StartHour, schedule.EndHour)
	}

	// 4. Выходной
	if schedule.IsWeekend(slot.Date) {
		return fmt.Errorf("%w: %s", ErrClosedDay, slot.Date.Weekday())
	}

	return nil
}

// DateTime разбирает строку и проверяет слот по расписанию
func DateTime(raw string, now time.Time, schedule domain.WorkSchedule) (Slot, error) {
	slot, err := ParseDateTime(raw, now.Location())
	if err != nil {
		return Slot{}, err
	}

	if err := CheckSlot(slot, now, schedule); err != nil {
		return Slot{}, err
	}

	return slot, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
