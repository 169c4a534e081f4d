package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingBot/pkg/types"
)

// ErrIncompleteSession возвращается, если в сессии не хватает полей для текущего состояния
var ErrIncompleteSession = errors.New("session: required fields are missing")

// BookingFields accumulates the answers collected so far
type BookingFields struct {
	Service     string           `json:"service,omitempty"`
	FullName    string           `json:"full_name,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	CarMake     string           `json:"car_make,omitempty"`
	CarYear     int              `json:"car_year,omitempty"`
	BookingDate time.Time        `json:"booking_date,omitempty"`
	BookingTime types.TimeString `json:"booking_time,omitempty"`
}

// Session is the per-user conversation state
type Session struct {
	UserID    int64         `json:"user_id"`
	State     State         `json:"state"`
	Fields    BookingFields `json:"fields"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewSession creates a session at the first step
func NewSession(userID int64, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		State:     StateService,
		UpdatedAt: now,
	}
}

// Clone returns an independent copy
func (s *Session) Clone() *Session {
	c := *s
	return &c
}

// IsExpired returns true if the session was idle longer than ttl
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.UpdatedAt) > ttl
}

// Validate checks that fields of passed steps are present and fields of later steps are not
func (s *Session) Validate() error {
	if !s.State.IsValid() {
		return fmt.Errorf("%w: unknown state %q", ErrIncompleteSession, s.State)
	}

	f := s.Fields
	// Порядок проверок соответствует порядку шагов диалога
	checks := []struct {
		after State
		ok    bool
		name  string
	}{
		{after: StateService, ok: f.Service != "", name: "service"},
		{after: StateFullName, ok: f.FullName != "", name: "full_name"},
		{after: StatePhone, ok: f.Phone != "", name: "phone"},
		{after: StateCarMake, ok: f.CarMake != "", name: "car_make"},
		{after: StateCarYear, ok: f.CarYear != 0, name: "car_year"},
		{after: StateDateTime, ok: !f.BookingDate.IsZero() && !f.BookingTime.IsZero(), name: "booking_date_time"},
	}

	current := s.State.position()
	for _, c := range checks {
		passed := c.after.position() < current
		if passed && !c.ok {
			return fmt.Errorf("%w: %s (state=%s)", ErrIncompleteSession, c.name, s.State)
		}
		if !passed && c.ok {
			return fmt.Errorf("%w: unexpected %s (state=%s)", ErrIncompleteSession, c.name, s.State)
		}
	}

	return nil
}

// position порядковый номер шага; ветки CustomMake/CustomYear делят позицию с основным шагом
func (s State) position() int {
	switch s {
	case StateService:
		return 0
	case StateFullName:
		return 1
	case StatePhone:
		return 2
	case StateCarMake, StateCustomMake:
		return 3
	case StateCarYear, StateCustomYear:
		return 4
	case StateDateTime:
		return 5
	case StateConfirm:
		return 6
	default:
		return -1
	}
}
