package domain

import (
	"errors"
	"fmt"

	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// ErrInvalidDuration возвращается при нулевой или отрицательной длительности услуги
var ErrInvalidDuration = errors.New("service duration must be positive")

// ResolveDayWindow вычисляет эффективное окно работы на дату:
// особая дата имеет приоритет над недельным расписанием.
//
// Правила:
//   - особая дата с isOpen=false закрывает день полностью, независимо от
//     недельного расписания
//   - особая дата с isOpen=true переопределяет open/close часы дня недели
//     (если указаны; nil означает "оставить часы дня недели")
//   - перерыв берётся из недельного расписания; особые даты перерыв
//     не переопределяют
//   - если недельного расписания для дня нет или день закрыт (и нет
//     открывающей особой даты с полным набором часов) - день закрыт
func ResolveDayWindow(hours *BusinessHours, special *SpecialDate) DayWindow {
	window := DayWindow{}

	if hours != nil && hours.IsOpen {
		window.IsOpen = true
		window.OpenTime = hours.OpenTime
		window.CloseTime = hours.CloseTime
		if hours.HasBreak() {
			window.BreakStart = hours.BreakStart
			window.BreakEnd = hours.BreakEnd
		}
	}

	if special == nil {
		return window
	}

	// Закрытый особый день обнуляет любую доступность
	if !special.IsOpen {
		return DayWindow{}
	}

	if special.OpenTime != nil {
		window.OpenTime = *special.OpenTime
		window.IsOpen = true
	}
	if special.CloseTime != nil {
		window.CloseTime = *special.CloseTime
		window.IsOpen = true
	}

	// Особая дата могла открыть день, закрытый по недельному расписанию;
	// без полного набора часов окно остаётся закрытым
	if window.OpenTime.IsZero() || window.CloseTime.IsZero() {
		return DayWindow{}
	}

	return window
}

// GenerateCandidates генерирует сетку кандидатов с фиксированным шагом
// SlotIntervalMinutes от открытия, пока время строго меньше закрытия.
// Шаг сетки - константа конфигурации, он не зависит от длительности услуги.
// Функция чистая: данные о записях здесь не участвуют
func GenerateCandidates(window DayWindow) ([]types.TimeString, error) {
	if !window.IsOpen {
		return []types.TimeString{}, nil
	}

	candidates := make([]types.TimeString, 0)
	current := window.OpenTime

	for current.IsBefore(window.CloseTime) {
		candidates = append(candidates, current)

		next, err := current.AddMinutes(SlotIntervalMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return candidates, nil
}

// SlotCheck результат проверки одного кандидата
type SlotCheck struct {
	Available bool
	// Overrun означает, что услуга не успевает до закрытия;
	// все последующие кандидаты тем более не успеют
	Overrun bool
}

// CheckSlot решает доступность кандидата для услуги заданной длительности
// против времени закрытия, окна перерыва и подтверждённых записей дня.
//
// Интервалы полуоткрытые [start, end): запись, заканчивающаяся ровно в
// момент начала другой, конфликтом НЕ является
func CheckSlot(
	start types.TimeString,
	durationMinutes int,
	window DayWindow,
	confirmed []*Booking,
	durations DurationIndex,
) (SlotCheck, error) {
	if durationMinutes <= 0 {
		return SlotCheck{}, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Конец за полуночью заведомо позже любого времени закрытия
		if errors.Is(err, types.ErrTimeOutOfRange) {
			return SlotCheck{Overrun: true}, nil
		}
		return SlotCheck{}, err
	}

	// Услуга должна закончиться не позже закрытия
	if end.IsAfter(window.CloseTime) {
		return SlotCheck{Overrun: true}, nil
	}

	// Перерыв занимает календарное место так же, как подтверждённая запись
	if window.HasBreak() && Overlaps(start, end, *window.BreakStart, *window.BreakEnd) {
		return SlotCheck{}, nil
	}

	for _, b := range confirmed {
		// Календарное место занимают только подтверждённые записи
		if !b.IsConfirmed() {
			continue
		}

		bookingEnd, err := b.StartTime.AddMinutes(durations.Resolve(b.ServiceType))
		if err != nil {
			// Непарсибельное время записи не должно ронять проверку остальных
			continue
		}

		if Overlaps(start, end, b.StartTime, bookingEnd) {
			return SlotCheck{}, nil
		}
	}

	return SlotCheck{Available: true}, nil
}

// Overlaps стандартный тест пересечения полуоткрытых интервалов:
// строгие неравенства, граничащие интервалы не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// BuildSlots собирает итоговую сетку слотов дня.
// Как только услуга перестаёт помещаться до закрытия, генерация
// останавливается: более поздние кандидаты не попадают в выдачу
func BuildSlots(
	window DayWindow,
	durationMinutes int,
	confirmed []*Booking,
	durations DurationIndex,
) ([]TimeSlot, error) {
	candidates, err := GenerateCandidates(window)
	if err != nil {
		return nil, err
	}

	slots := make([]TimeSlot, 0, len(candidates))
	for _, start := range candidates {
		check, err := CheckSlot(start, durationMinutes, window, confirmed, durations)
		if err != nil {
			return nil, err
		}
		if check.Overrun {
			break
		}
		slots = append(slots, TimeSlot{StartTime: start, Available: check.Available})
	}

	return slots, nil
}
