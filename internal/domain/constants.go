package domain

// Time format constants
const (
	TimeFormat     = "15:04"             // HH:MM
	DateFormat     = "2006-01-02"        // YYYY-MM-DD, для БД
	UserDateFormat = "02.01.2006"        // DD.MM.YYYY, для сообщений
	SlotFormat     = "02.01.2006, 15:04" // формат ввода даты и времени
)

// Business validation constants
const (
	MinCarYear        = 1980
	MinNameLength     = 2
	MinCarMakeLength  = 2
	DefaultWorkStart  = 9
	DefaultWorkEnd    = 20
	DefaultYearsShown = 6
)
