package domain

import "time"

// WorkSchedule describes when the shop accepts appointments
type WorkSchedule struct {
	StartHour   int // первый час приема, включительно
	EndHour     int // час закрытия, не включительно
	WeekendDays []time.Weekday
}

// DefaultWorkSchedule 09:00-20:00, closed on Sunday
func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{
		StartHour:   DefaultWorkStart,
		EndHour:     DefaultWorkEnd,
		WeekendDays: []time.Weekday{time.Sunday},
	}
}

// IsWorkingHour checks only the hour; minutes inside the last hour are not considered
func (s WorkSchedule) IsWorkingHour(hour int) bool {
	return hour >= s.StartHour && hour < s.EndHour
}

// IsWeekend returns true if the shop is closed on the date's weekday
func (s WorkSchedule) IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	for _, d := range s.WeekendDays {
		if d == wd {
			return true
		}
	}
	return false
}

// ShopInfo is shown in the final confirmation
type ShopInfo struct {
	Address string
	Phone   string
	Email   string
}
