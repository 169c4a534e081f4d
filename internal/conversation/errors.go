package conversation

import "errors"

var (
	// ErrMalformedSession сессия не соответствует своему состоянию (в strict режиме)
	ErrMalformedSession = errors.New("conversation: malformed session")

	// ErrStore ошибка хранилища сессий
	ErrStore = errors.New("conversation: session store failure")

	// errUnexpectedEvent событие не той категории для текущего шага
	errUnexpectedEvent = errors.New("conversation: unexpected event for state")
)
