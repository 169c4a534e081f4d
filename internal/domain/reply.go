package domain

// Option is a selectable choice rendered by the transport
type Option struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Reply is what the conversation sends back to the user
type Reply struct {
	Text    string     `json:"text"`
	Options [][]Option `json:"options,omitempty"` // строки кнопок
	// MainMenu просит транспорт показать постоянную кнопку начала записи
	MainMenu bool `json:"mainMenu,omitempty"`
}

// HasOptions returns true if the reply carries buttons
func (r *Reply) HasOptions() bool {
	return len(r.Options) > 0
}
