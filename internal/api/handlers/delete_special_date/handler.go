package delete_special_date

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers"
	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "особая дата не найдена"
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

// Handle DELETE /api/v1/schedule/special-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("DELETE /schedule/special-dates/{date} - Invalid date: %s", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteSpecialDate(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSpecialDateNotFound):
			h.logger.Warn("DELETE /schedule/special-dates/{date} - Not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /schedule/special-dates/{date} - Failed to delete: date=%s, error=%v",
				dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/special-dates/{date} - Special date deleted successfully: date=%s", dateStr)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
