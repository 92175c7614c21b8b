package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers"
	"github.com/robin-uz/BraidByKARI-sub000/internal/api/middleware"
	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/bookings"
	confirmBooking "github.com/robin-uz/BraidByKARI-sub000/internal/usecase/confirm_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "запись не найдена"
	msgUnknownStatus      = "неизвестный статус"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgSlotUnavailable    = "слот уже занят другой подтверждённой записью"
	msgAlreadyOccurred    = "запись уже состоялась"
)

// Handler PATCH /bookings/{bookingId}/status
//
// Диспетчеризация по целевому статусу: подтверждение идёт через
// сериализуемый use case с повторной проверкой конфликтов, отмена -
// через сервис записей. Прямых переходов в pending не существует
type Handler struct {
	confirmUseCase ConfirmBookingUseCase
	service        BookingService
	logger         Logger
}

func NewHandler(confirmUseCase ConfirmBookingUseCase, service BookingService, logger Logger) *Handler {
	return &Handler{
		confirmUseCase: confirmUseCase,
		service:        service,
		logger:         logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !req.IsValidTarget() {
		h.logger.Warn("PATCH /bookings/{id}/status - Unknown status: booking_id=%d, status=%s",
			bookingID, req.Status)
		handlers.RespondBadRequest(w, msgUnknownStatus)
		return
	}

	switch domain.BookingStatus(req.Status) {
	case domain.StatusConfirmed:
		h.handleConfirm(w, r, bookingID)
	case domain.StatusCancelled:
		h.handleCancel(w, r, bookingID, userID, &req)
	default:
		// pending - стартовый статус, в него нет переходов
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid target status: booking_id=%d, status=%s",
			bookingID, req.Status)
		handlers.RespondBadRequest(w, msgInvalidTransition)
	}
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request, bookingID int64) {
	result, err := h.confirmUseCase.Execute(r.Context(), &confirmBooking.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, confirmBooking.ErrSlotNoLongerAvailable):
			h.logger.Warn("PATCH /bookings/{id}/status - Slot no longer available: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to confirm booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking confirmed successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromConfirmResponse(result))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request, bookingID, userID int64, req *UpdateStatusRequest) {
	result, err := h.service.Cancel(r.Context(), bookingID, req.ToCancelRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrAlreadyOccurred):
			h.logger.Warn("PATCH /bookings/{id}/status - Already occurred: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgAlreadyOccurred)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking cancelled successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromCancelResponse(result))
}
