package domain

// Default values
const (
	// SlotIntervalMinutes шаг сетки слотов. Константа конфигурации,
	// не зависит от длительности услуги
	SlotIntervalMinutes = 30

	// DefaultServiceDurationMinutes длительность услуги по умолчанию,
	// применяется когда услугу не удалось разрезолвить по названию
	DefaultServiceDurationMinutes = 60
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 120
	MaxNotesLength            = 500
	MaxCancelReasonLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses список всех валидных статусов записи
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}
