package confirm_booking

import (
	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
)

// Request модель запроса на подтверждение записи
type Request struct {
	BookingID int64
}

// Response модель ответа: обновлённая запись плюс событие перехода,
// по которому внешняя подсистема уведомлений может отреагировать
type Response struct {
	Booking    *domain.Booking
	Transition domain.TransitionRecord
}
