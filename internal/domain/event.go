package domain

import (
	"strconv"
	"strings"
)

// EventKind is the decoded category of an inbound event
type EventKind string

const (
	EventMenu            EventKind = "menu"
	EventStart           EventKind = "start"
	EventCancel          EventKind = "cancel"
	EventText            EventKind = "text"
	EventServiceSelected EventKind = "service_selected"
	EventMakeSelected    EventKind = "make_selected"
	EventMakeOther       EventKind = "make_other"
	EventYearSelected    EventKind = "year_selected"
	EventYearOther       EventKind = "year_other"
	EventConfirmYes      EventKind = "confirm_yes"
	EventConfirmNo       EventKind = "confirm_no"
	EventUnknown         EventKind = "unknown"
)

// Commands and menu labels recognised in free text
const (
	CommandStart  = "/start"
	CommandBook   = "/book"
	CommandCancel = "/cancel"
	MenuBookLabel = "📝 Записаться"
)

// Callback token prefixes
const (
	tokenService = "svc:"
	tokenMake    = "make:"
	tokenYear    = "year:"
	tokenConfirm = "confirm:"
	tokenOther   = "other"
)

// Event is an inbound user action decoded once at the transport boundary
type Event struct {
	UserID int64
	Kind   EventKind
	// Text свободный текст для EventText
	Text string
	// Value полезная нагрузка кнопки: ключ услуги, марка, год
	Value string
}

// IsSelection returns true for button events
func (e Event) IsSelection() bool {
	switch e.Kind {
	case EventServiceSelected, EventMakeSelected, EventMakeOther,
		EventYearSelected, EventYearOther, EventConfirmYes, EventConfirmNo, EventUnknown:
		return true
	default:
		return false
	}
}

// DecodeText turns a free-text message into an event; commands are recognised first
func DecodeText(userID int64, text string) Event {
	trimmed := strings.TrimSpace(text)

	switch command(trimmed) {
	case CommandStart:
		return Event{UserID: userID, Kind: EventMenu}
	case CommandBook:
		return Event{UserID: userID, Kind: EventStart}
	case CommandCancel:
		return Event{UserID: userID, Kind: EventCancel}
	}

	if trimmed == MenuBookLabel {
		return Event{UserID: userID, Kind: EventStart}
	}

	return Event{UserID: userID, Kind: EventText, Text: trimmed}
}

// command убирает суффикс @botname у команд в групповых чатах
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd)
}

// DecodeCallback turns a button token into an event
func DecodeCallback(userID int64, token string) Event {
	ev := Event{UserID: userID, Kind: EventUnknown, Value: token}

	switch {
	case strings.HasPrefix(token, tokenService):
		if key := strings.TrimPrefix(token, tokenService); key != "" {
			ev.Kind, ev.Value = EventServiceSelected, key
		}
	case strings.HasPrefix(token, tokenMake):
		value := strings.TrimPrefix(token, tokenMake)
		switch value {
		case "":
		case tokenOther:
			ev.Kind, ev.Value = EventMakeOther, ""
		default:
			ev.Kind, ev.Value = EventMakeSelected, value
		}
	case strings.HasPrefix(token, tokenYear):
		value := strings.TrimPrefix(token, tokenYear)
		if value == tokenOther {
			ev.Kind, ev.Value = EventYearOther, ""
		} else if _, err := strconv.Atoi(value); err == nil {
			ev.Kind, ev.Value = EventYearSelected, value
		}
	case token == tokenConfirm+"yes":
		ev.Kind, ev.Value = EventConfirmYes, ""
	case token == tokenConfirm+"no":
		ev.Kind, ev.Value = EventConfirmNo, ""
	}

	return ev
}

func ServiceToken(key string) string  { return tokenService + key }
func MakeToken(carMake string) string { return tokenMake + carMake }
func MakeOtherToken() string          { return tokenMake + tokenOther }
func YearToken(year int) string       { return tokenYear + strconv.Itoa(year) }
func YearOtherToken() string          { return tokenYear + tokenOther }
func ConfirmYesToken() string         { return tokenConfirm + "yes" }
func ConfirmNoToken() string          { return tokenConfirm + "no" }
