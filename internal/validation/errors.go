package validation

import "errors"

var (
	// ErrServiceUnknown выбранной услуги нет в каталоге
	ErrServiceUnknown = errors.New("validation: unknown service")

	// ErrNameInvalid имя короче двух символов или содержит не буквы
	ErrNameInvalid = errors.New("validation: invalid full name")

	// ErrPhoneInvalid телефон не соответствует формату +7XXXXXXXXXX / 8XXXXXXXXXX
	ErrPhoneInvalid = errors.New("validation: invalid phone number")

	// ErrMakeUnknown выбранной марки нет в меню
	ErrMakeUnknown = errors.New("validation: unknown car make")

	// ErrMakeTooShort марка, введенная вручную, короче двух символов
	ErrMakeTooShort = errors.New("validation: car make is too short")

	// ErrYearNotNumber год не является целым числом
	ErrYearNotNumber = errors.New("validation: car year is not a number")

	// ErrYearOutOfRange год вне диапазона [1980, текущий+1]
	ErrYearOutOfRange = errors.New("validation: car year is out of range")

	// ErrDateTimeFormat строка не соответствует шаблону ДД.ММ.ГГГГ, ЧЧ:ММ
	ErrDateTimeFormat = errors.New("validation: invalid date-time format")

	// ErrDateTimeInvalid шаблон совпал, но такой даты или времени не существует
	ErrDateTimeInvalid = errors.New("validation: date-time does not exist")

	// ErrPastDate дата раньше сегодняшней
	ErrPastDate = errors.New("validation: date is in the past")

	// ErrTimeElapsed сегодняшнее время уже прошло
	ErrTimeElapsed = errors.New("validation: time has already elapsed")

	// ErrOutsideWorkingHours час вне рабочего времени
	ErrOutsideWorkingHours = errors.New("validation: outside working hours")

	// ErrClosedDay выходной день
	ErrClosedDay = errors.New("validation: shop is closed on this day")
)

var reasons = []struct {
	err  error
	code string
}{
	{ErrServiceUnknown, "service_unknown"},
	{ErrNameInvalid, "name_invalid"},
	{ErrPhoneInvalid, "phone_invalid"},
	{ErrMakeUnknown, "make_unknown"},
	{ErrMakeTooShort, "make_too_short"},
	{ErrYearNotNumber, "year_not_number"},
	{ErrYearOutOfRange, "year_out_of_range"},
	{ErrDateTimeFormat, "datetime_format"},
	{ErrDateTimeInvalid, "datetime_invalid"},
	{ErrPastDate, "past_date"},
	{ErrTimeElapsed, "time_elapsed"},
	{ErrOutsideWorkingHours, "outside_working_hours"},
	{ErrClosedDay, "closed_day"},
}

// Reason короткий код ошибки для метрик и логов
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return "unknown"
}
