package finalize_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingBot/pkg/types"
)

// Request данные подтвержденной записи
type Request struct {
	UserID      int64            // внешний ID пользователя (Telegram ID)
	FullName    string           // ФИО
	Phone       string           // телефон в формате +7XXXXXXXXXX
	ServiceType string           // название услуги
	CarMake     string           // марка автомобиля
	CarYear     int              // год выпуска
	Date        time.Time        // дата записи (без времени)
	Time        types.TimeString // время записи, HH:MM
}

// Response результат записи
type Response struct {
	BookingID   int64            // номер записи
	UserCreated bool             // пользователь создан этой записью
	Date        time.Time        // дата записи
	Time        types.TimeString // время записи
	Status      string           // статус, всегда pending
}
