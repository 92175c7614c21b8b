package update_booking_status

import (
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	serviceModels "github.com/robin-uz/BraidByKARI-sub000/internal/service/bookings/models"
	confirmBooking "github.com/robin-uz/BraidByKARI-sub000/internal/usecase/confirm_booking"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// TransitionResponse HTTP response model со сменой статуса
type TransitionResponse struct {
	BookingID  int64     `json:"bookingId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

// FromConfirmResponse конвертирует ответ use case подтверждения в HTTP response
func FromConfirmResponse(resp *confirmBooking.Response) *TransitionResponse {
	return &TransitionResponse{
		BookingID:  resp.Transition.BookingID,
		From:       string(resp.Transition.From),
		To:         string(resp.Transition.To),
		OccurredAt: resp.Transition.OccurredAt,
	}
}

// FromCancelResponse конвертирует ответ сервиса отмены в HTTP response
func FromCancelResponse(resp *serviceModels.TransitionResponse) *TransitionResponse {
	return &TransitionResponse{
		BookingID:  resp.BookingID,
		From:       resp.From,
		To:         resp.To,
		OccurredAt: resp.OccurredAt,
	}
}

// ToCancelRequest собирает запрос сервиса отмены
func (r *UpdateStatusRequest) ToCancelRequest(userID int64) *serviceModels.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &serviceModels.CancelBookingRequest{
		UserID:             userID,
		IsAdmin:            true,
		CancellationReason: reason,
	}
}

// IsValidTarget проверяет, что целевой статус существует
func (r *UpdateStatusRequest) IsValidTarget() bool {
	for _, valid := range domain.AllStatuses {
		if domain.BookingStatus(r.Status) == valid {
			return true
		}
	}
	return false
}
