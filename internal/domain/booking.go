package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingBot/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a service appointment at the shop
type Booking struct {
	ID          int64
	UserID      int64
	ServiceType string
	CarMake     string
	CarYear     int
	BookingDate time.Time // только дата, время суток в BookingTime
	BookingTime types.TimeString
	Status      BookingStatus
	CreatedAt   time.Time
}

// StartsAt returns the appointment moment in the date's location
func (b *Booking) StartsAt() time.Time {
	return b.BookingTime.On(b.BookingDate)
}

// IsPending returns true until staff confirms or cancels the booking
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}
