package domain

import "time"

// User is a customer who has confirmed at least one booking
type User struct {
	UserID    int64
	FullName  string
	Phone     string
	CreatedAt time.Time
}
