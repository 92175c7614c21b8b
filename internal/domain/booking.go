package domain

import (
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a salon appointment in the system
type Booking struct {
	ID          int64
	ClientID    int64
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала, "HH:MM"
	ServiceType string           // Название услуги из каталога (Service.Name)
	Status      BookingStatus
	DepositPaid bool

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking occupies calendar space.
// Только подтверждённые записи блокируют слоты, pending не блокирует -
// это осознанная бизнес-политика: до подтверждения администратором
// допускается несколько pending-записей на один слот
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// StartsAt возвращает момент начала записи в переданной таймзоне
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	minutes, err := b.StartTime.TotalMinutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, loc)
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// CanTransition validates a transition of the booking state machine:
// pending -> confirmed | cancelled, confirmed -> cancelled, cancelled terminal
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

// TransitionRecord фиксирует смену статуса записи
// Возвращается из операций подтверждения/отмены, чтобы внешняя подсистема
// уведомлений могла отреагировать на событие
type TransitionRecord struct {
	BookingID  int64
	From       BookingStatus
	To         BookingStatus
	OccurredAt time.Time
}

// BookingsFilter фильтр для выборки записей
type BookingsFilter struct {
	Date     *time.Time     // Конкретная дата (опционально)
	ClientID *int64         // Фильтр по клиенту (опционально)
	Status   *BookingStatus // Фильтр по статусу (опционально)
}
