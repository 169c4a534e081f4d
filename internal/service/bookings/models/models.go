package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	ServiceType string    `json:"serviceType"`
	CarMake     string    `json:"carMake"`
	CarYear     int       `json:"carYear"`
	BookingDate string    `json:"bookingDate"` // "2024-05-25"
	BookingTime string    `json:"bookingTime"` // "14:00"
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		ServiceType: b.ServiceType,
		CarMake:     b.CarMake,
		CarYear:     b.CarYear,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		BookingTime: b.BookingTime.String(),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей
func FromDomainBookingList(list []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(list))}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus проверяет строковый статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch status := domain.BookingStatus(s); status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
