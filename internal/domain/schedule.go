package domain

import (
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// BusinessHours represents the recurring weekly schedule of the salon.
// Exactly one record exists per weekday
type BusinessHours struct {
	DayOfWeek time.Weekday
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString

	// BreakStart и BreakEnd либо оба заданы, либо оба nil
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString

	UpdatedAt time.Time
}

// HasBreak returns true if a break window is configured for the day
func (h *BusinessHours) HasBreak() bool {
	return h.BreakStart != nil && h.BreakEnd != nil
}

// SpecialDate represents a one-off override for a specific calendar date:
// a holiday (IsOpen=false) or custom hours.
// Приоритет выше, чем у недельного расписания
type SpecialDate struct {
	Date   time.Time
	IsOpen bool

	// OpenTime/CloseTime при IsOpen=true переопределяют часы дня недели;
	// nil означает "использовать часы дня недели"
	OpenTime  *types.TimeString
	CloseTime *types.TimeString

	Reason    *string
	UpdatedAt time.Time
}

// DayWindow эффективное окно работы на конкретную дату
// после применения SpecialDate поверх BusinessHours
type DayWindow struct {
	IsOpen     bool
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// HasBreak returns true if the effective window contains a break
func (w *DayWindow) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil
}
