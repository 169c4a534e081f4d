package domain

// State is a step of the booking conversation
type State string

const (
	StateService    State = "service"
	StateFullName   State = "full_name"
	StatePhone      State = "phone"
	StateCarMake    State = "car_make"
	StateCustomMake State = "custom_make"
	StateCarYear    State = "car_year"
	StateCustomYear State = "custom_year"
	StateDateTime   State = "date_time"
	StateConfirm    State = "confirm"

	// Терминальные состояния: сессия удаляется, в хранилище не попадают
	StateBooked    State = "booked"
	StateCancelled State = "cancelled"

	// StateNone отсутствие сессии
	StateNone State = "none"
)

func (s State) String() string {
	return string(s)
}

// IsTerminal returns true for states that end the conversation
func (s State) IsTerminal() bool {
	return s == StateBooked || s == StateCancelled
}

// IsValid returns true for states a stored session may be in
func (s State) IsValid() bool {
	switch s {
	case StateService, StateFullName, StatePhone, StateCarMake, StateCustomMake,
		StateCarYear, StateCustomYear, StateDateTime, StateConfirm:
		return true
	default:
		return false
	}
}
