package get_schedule

import (
	"net/http"
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers"
	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

	// Период особых дат по умолчанию, если границы не заданы в запросе
	defaultSpecialDatesDays = 90
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

// Handle GET /api/v1/schedule
// Query params: from, to (optional, YYYY-MM-DD) - период особых дат
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, defaultSpecialDatesDays)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /schedule - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = parsed
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /schedule - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		to = parsed
	}

	result, err := h.service.GetSchedule(r.Context(), &models.GetScheduleRequest{From: from, To: to})
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get schedule: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule - Schedule retrieved successfully: weekdays=%d, special_dates=%d",
		len(result.BusinessHours), len(result.SpecialDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
