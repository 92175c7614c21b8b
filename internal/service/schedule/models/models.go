package models

import (
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// Request модели

// UpdateBusinessHoursRequest запрос на обновление расписания дня недели
type UpdateBusinessHoursRequest struct {
	DayOfWeek  int     `json:"-"` // из path, 0 = Sunday
	IsOpen     bool    `json:"isOpen"`
	OpenTime   string  `json:"openTime"`  // "09:00"
	CloseTime  string  `json:"closeTime"` // "18:00"
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// UpsertSpecialDateRequest запрос на установку особой даты
type UpsertSpecialDateRequest struct {
	Date      string  `json:"-"` // из path, "2026-12-31"
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// GetScheduleRequest запрос на получение расписания
// Особые даты возвращаются за период [From, To]
type GetScheduleRequest struct {
	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

// Response модели

// BusinessHoursResponse расписание одного дня недели
type BusinessHoursResponse struct {
	DayOfWeek  int     `json:"dayOfWeek"`
	IsOpen     bool    `json:"isOpen"`
	OpenTime   string  `json:"openTime"`
	CloseTime  string  `json:"closeTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// SpecialDateResponse особая дата
type SpecialDateResponse struct {
	Date      string  `json:"date"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ScheduleResponse полное расписание салона
type ScheduleResponse struct {
	BusinessHours []BusinessHoursResponse `json:"businessHours"`
	SpecialDates  []SpecialDateResponse   `json:"specialDates"`
}

// Методы конвертации

// FromDomainBusinessHours конвертирует domain модель в DTO
func FromDomainBusinessHours(h *domain.BusinessHours) *BusinessHoursResponse {
	if h == nil {
		return nil
	}

	return &BusinessHoursResponse{
		DayOfWeek:  int(h.DayOfWeek),
		IsOpen:     h.IsOpen,
		OpenTime:   h.OpenTime.String(),
		CloseTime:  h.CloseTime.String(),
		BreakStart: timeStringPtr(h.BreakStart),
		BreakEnd:   timeStringPtr(h.BreakEnd),
	}
}

// FromDomainSpecialDate конвертирует domain модель в DTO
func FromDomainSpecialDate(s *domain.SpecialDate) *SpecialDateResponse {
	if s == nil {
		return nil
	}

	return &SpecialDateResponse{
		Date:      s.Date.Format(domain.DateFormat),
		IsOpen:    s.IsOpen,
		OpenTime:  timeStringPtr(s.OpenTime),
		CloseTime: timeStringPtr(s.CloseTime),
		Reason:    s.Reason,
	}
}

// FromDomainSchedule собирает полное расписание из domain моделей
func FromDomainSchedule(hours []*domain.BusinessHours, specials []*domain.SpecialDate) *ScheduleResponse {
	resp := &ScheduleResponse{
		BusinessHours: make([]BusinessHoursResponse, 0, len(hours)),
		SpecialDates:  make([]SpecialDateResponse, 0, len(specials)),
	}

	for _, h := range hours {
		if hoursResp := FromDomainBusinessHours(h); hoursResp != nil {
			resp.BusinessHours = append(resp.BusinessHours, *hoursResp)
		}
	}
	for _, s := range specials {
		if specialResp := FromDomainSpecialDate(s); specialResp != nil {
			resp.SpecialDates = append(resp.SpecialDates, *specialResp)
		}
	}

	return resp
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
