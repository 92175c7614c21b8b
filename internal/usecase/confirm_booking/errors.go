package confirm_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("confirm_booking: invalid status transition")

	// ErrSlotNoLongerAvailable возвращается, когда повторная проверка
	// конфликтов при подтверждении находит пересечение с другой
	// подтверждённой записью, перерывом или закрытием салона.
	// Клиенту следует перезапросить слоты и выбрать другое время
	ErrSlotNoLongerAvailable = errors.New("confirm_booking: slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
