package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

var (
	nameRe       = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z\s]+$`)
	phoneStripRe = regexp.MustCompile(`[\s\-()]`)
	phoneRe      = regexp.MustCompile(`^(\+7|8)([0-9]{10})$`)
)

// Service возвращает название услуги по ключу кнопки
func Service(key string, catalog domain.Catalog) (string, error) {
	name, ok := catalog.ServiceName(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrServiceUnknown, key)
	}
	return name, nil
}

// FullName проверяет имя: не короче двух символов, только кириллица, латиница и пробелы
func FullName(raw string) (string, error) {
	name := strings.TrimSpace(raw)

	if utf8.RuneCountInString(name) < domain.MinNameLength || !nameRe.MatchString(name) {
		return "", ErrNameInvalid
	}

	return name, nil
}

// Phone убирает разделители и приводит номер к виду +7XXXXXXXXXX
func Phone(raw string) (string, error) {
	cleaned := phoneStripRe.ReplaceAllString(strings.TrimSpace(raw), "")

	m := phoneRe.FindStringSubmatch(cleaned)
	if m == nil {
		return "", ErrPhoneInvalid
	}

	return "+7" + m[2], nil
}

// CarMake проверяет, что марка выбрана из меню
func CarMake(choice string, catalog domain.Catalog) (string, error) {
	if !catalog.HasMake(choice) {
		return "", fmt.Errorf("%w: %q", ErrMakeUnknown, choice)
	}
	return choice, nil
}

// CustomCarMake проверяет марку, введенную вручную
func CustomCarMake(raw string) (string, error) {
	carMake := strings.TrimSpace(raw)
	if utf8.RuneCountInString(carMake) < domain.MinCarMakeLength {
		return "", ErrMakeTooShort
	}
	return carMake, nil
}

// CarYear проверяет год выпуска: целое число в диапазоне [1980, текущий год + 1]
func CarYear(raw string, now time.Time) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrYearNotNumber
	}

	if year < domain.MinCarYear || year > MaxCarYear(now) {
		return 0, fmt.Errorf("%w: %d", ErrYearOutOfRange, year)
	}

	return year, nil
}

// MaxCarYear верхняя граница года выпуска
func MaxCarYear(now time.Time) int {
	return now.Year() + 1
}
