package session

import "errors"

var (
	// ErrSessionNotFound возвращается, если у пользователя нет активной сессии
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrInvalidSession возвращается при попытке сохранить некорректную сессию
	ErrInvalidSession = errors.New("session.store: invalid session")

	// ErrEncode возвращается при ошибке сериализации сессии
	ErrEncode = errors.New("session.store: failed to encode session")

	// ErrDecode возвращается при ошибке десериализации сессии
	ErrDecode = errors.New("session.store: failed to decode session")

	// ErrBackend возвращается при ошибке хранилища (Redis)
	ErrBackend = errors.New("session.store: backend error")
)
