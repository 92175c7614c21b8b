package domain

import "github.com/robin-uz/BraidByKARI-sub000/pkg/types"

// TimeSlot represents a candidate appointment start time on the slot grid.
// Derived, never persisted
type TimeSlot struct {
	StartTime types.TimeString
	Available bool
}
