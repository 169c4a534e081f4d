package finalize_booking

import "errors"

var (
	// ErrInvalidInput возвращается, если данные сессии неполные или некорректные
	ErrInvalidInput = errors.New("finalize_booking: invalid input data")

	// ErrTimeout возвращается, если запись в БД не уложилась в отведенное время
	ErrTimeout = errors.New("finalize_booking: persistence timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("finalize_booking: internal error")
)
