package handle_event

import "github.com/m04kA/SMC-BookingBot/internal/domain"

const (
	KindText     = "text"
	KindCallback = "callback"
)

// HandleEventRequest HTTP request model
type HandleEventRequest struct {
	Kind string `json:"kind" validate:"required,oneof=text callback"`
	Text string `json:"text,omitempty" validate:"required_if=Kind text,max=1024"`
	Data string `json:"data,omitempty" validate:"required_if=Kind callback,max=64"`
}

// OptionResponse кнопка выбора
type OptionResponse struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// ReplyResponse HTTP response model
type ReplyResponse struct {
	Text     string             `json:"text"`
	Options  [][]OptionResponse `json:"options,omitempty"`
	MainMenu bool               `json:"mainMenu,omitempty"`
}

// ToEvent декодирует запрос в событие так же, как это делает telegram транспорт
func (r *HandleEventRequest) ToEvent(userID int64) domain.Event {
	if r.Kind == KindCallback {
		return domain.DecodeCallback(userID, r.Data)
	}
	return domain.DecodeText(userID, r.Text)
}

// FromReply конвертирует ответ автомата в HTTP response
func FromReply(reply *domain.Reply) *ReplyResponse {
	resp := &ReplyResponse{Text: reply.Text, MainMenu: reply.MainMenu}
	for _, row := range reply.Options {
		out := make([]OptionResponse, 0, len(row))
		for _, opt := range row {
			out = append(out, OptionResponse{Label: opt.Label, Token: opt.Token})
		}
		resp.Options = append(resp.Options, out)
	}
	return resp
}
