package list_services

import (
	"net/http"
	"strconv"

	"github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers"
)

const msgInvalidIncludeInactive = "некорректное значение includeInactive"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Query params: includeInactive (optional, default false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	onlyActive := true
	if includeStr := r.URL.Query().Get("includeInactive"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			h.logger.Warn("GET /services - Invalid includeInactive: %s", includeStr)
			handlers.RespondBadRequest(w, msgInvalidIncludeInactive)
			return
		}
		onlyActive = !include
	}

	result, err := h.service.List(r.Context(), onlyActive)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
