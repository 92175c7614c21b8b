package update_business_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule/models"
)

const (
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается 0-6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные расписания"
	msgInvalidTimeRange   = "некорректный временной диапазон"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedule/business-hours/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dayStr := vars["dayOfWeek"]

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 0 || day > 6 {
		h.logger.Warn("PUT /schedule/business-hours/{day} - Invalid day of week: %s", dayStr)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpdateBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/business-hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.DayOfWeek = day

	result, err := h.service.UpdateBusinessHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("PUT /schedule/business-hours/{day} - Invalid time range: day=%d, error=%v", day, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/business-hours/{day} - Invalid input: day=%d, error=%v", day, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /schedule/business-hours/{day} - Failed to update: day=%d, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/business-hours/{day} - Business hours updated successfully: day=%d", day)
	handlers.RespondJSON(w, http.StatusOK, result)
}
