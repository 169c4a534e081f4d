package finalize_booking

import (
	"fmt"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

// validateRequest проверяет, что все поля заполнены.
// Бизнес-правила слота здесь не повторяются: их проверяет диалог на шаге даты
func validateRequest(req *Request) error {
	if req.UserID == 0 {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.FullName == "" {
		return fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}

	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if req.ServiceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}

	if req.CarMake == "" {
		return fmt.Errorf("%w: carMake is required", ErrInvalidInput)
	}

	if req.CarYear < domain.MinCarYear {
		return fmt.Errorf("%w: carYear %d is below %d", ErrInvalidInput, req.CarYear, domain.MinCarYear)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	return nil
}
