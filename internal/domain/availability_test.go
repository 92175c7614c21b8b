package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsPtr(s string) *types.TimeString {
	t := types.TimeString(s)
	return &t
}

func openDay(open, close string) *BusinessHours {
	return &BusinessHours{
		DayOfWeek: 2,
		IsOpen:    true,
		OpenTime:  ts(open),
		CloseTime: ts(close),
	}
}

func confirmedBooking(start, serviceType string) *Booking {
	return &Booking{
		StartTime:   ts(start),
		ServiceType: serviceType,
		Status:      StatusConfirmed,
	}
}

func TestResolveDayWindow(t *testing.T) {
	t.Run("закрытый день недели без особой даты", func(t *testing.T) {
		window := ResolveDayWindow(&BusinessHours{IsOpen: false}, nil)
		assert.False(t, window.IsOpen)
	})

	t.Run("нет расписания для дня", func(t *testing.T) {
		window := ResolveDayWindow(nil, nil)
		assert.False(t, window.IsOpen)
	})

	t.Run("обычный открытый день", func(t *testing.T) {
		window := ResolveDayWindow(openDay("09:00", "18:00"), nil)
		require.True(t, window.IsOpen)
		assert.Equal(t, ts("09:00"), window.OpenTime)
		assert.Equal(t, ts("18:00"), window.CloseTime)
		assert.False(t, window.HasBreak())
	})

	t.Run("перерыв переносится из недельного расписания", func(t *testing.T) {
		hours := openDay("09:00", "18:00")
		hours.BreakStart = tsPtr("13:00")
		hours.BreakEnd = tsPtr("14:00")

		window := ResolveDayWindow(hours, nil)
		require.True(t, window.HasBreak())
		assert.Equal(t, ts("13:00"), *window.BreakStart)
	})

	t.Run("закрытая особая дата закрывает открытый день", func(t *testing.T) {
		special := &SpecialDate{IsOpen: false}
		window := ResolveDayWindow(openDay("09:00", "18:00"), special)
		assert.False(t, window.IsOpen)
	})

	t.Run("особая дата переопределяет часы", func(t *testing.T) {
		special := &SpecialDate{
			IsOpen:    true,
			OpenTime:  tsPtr("11:00"),
			CloseTime: tsPtr("15:00"),
		}
		window := ResolveDayWindow(openDay("09:00", "18:00"), special)
		require.True(t, window.IsOpen)
		assert.Equal(t, ts("11:00"), window.OpenTime)
		assert.Equal(t, ts("15:00"), window.CloseTime)
	})

	t.Run("открытая особая дата без часов наследует день недели", func(t *testing.T) {
		special := &SpecialDate{IsOpen: true}
		window := ResolveDayWindow(openDay("09:00", "18:00"), special)
		require.True(t, window.IsOpen)
		assert.Equal(t, ts("09:00"), window.OpenTime)
	})

	t.Run("открытая особая дата на закрытый день без часов - день закрыт", func(t *testing.T) {
		special := &SpecialDate{IsOpen: true}
		window := ResolveDayWindow(&BusinessHours{IsOpen: false}, special)
		assert.False(t, window.IsOpen)
	})
}

func TestGenerateCandidates(t *testing.T) {
	t.Run("сетка с шагом 30 минут", func(t *testing.T) {
		window := DayWindow{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("11:00")}

		candidates, err := GenerateCandidates(window)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, candidates)
	})

	t.Run("закрытый день - пустая сетка", func(t *testing.T) {
		candidates, err := GenerateCandidates(DayWindow{})
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("сетка детерминирована", func(t *testing.T) {
		window := DayWindow{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00")}

		first, err := GenerateCandidates(window)
		require.NoError(t, err)
		second, err := GenerateCandidates(window)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"полное пересечение", "10:00", "11:00", "10:15", "10:45", true},
		{"частичное пересечение", "10:00", "11:00", "10:30", "11:30", true},
		{"встык: конец равен началу - не конфликт", "09:00", "10:00", "10:00", "11:00", false},
		{"встык в другую сторону", "10:00", "11:00", "09:00", "10:00", false},
		{"без пересечения", "09:00", "10:00", "11:00", "12:00", false},
		{"одинаковые интервалы", "10:00", "11:00", "10:00", "11:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(ts(tt.aStart), ts(tt.aEnd), ts(tt.bStart), ts(tt.bEnd)))
		})
	}
}

func TestCheckSlot(t *testing.T) {
	window := DayWindow{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00")}
	durations := DurationIndex{"Box Braids": 60, "Cornrows": 90}

	t.Run("свободный слот доступен", func(t *testing.T) {
		check, err := CheckSlot(ts("09:00"), 60, window, nil, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)
		assert.False(t, check.Overrun)
	})

	t.Run("услуга не помещается до закрытия", func(t *testing.T) {
		check, err := CheckSlot(ts("17:30"), 60, window, nil, durations)
		require.NoError(t, err)
		assert.True(t, check.Overrun)
		assert.False(t, check.Available)
	})

	t.Run("окончание ровно в закрытие допустимо", func(t *testing.T) {
		check, err := CheckSlot(ts("17:00"), 60, window, nil, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)
	})

	t.Run("окончание за полуночью - это overrun, а не ошибка", func(t *testing.T) {
		lateWindow := DayWindow{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("23:59")}

		check, err := CheckSlot(ts("23:45"), 60, lateWindow, nil, durations)
		require.NoError(t, err)
		assert.True(t, check.Overrun)
		assert.False(t, check.Available)
	})

	t.Run("нулевая длительность - ошибка", func(t *testing.T) {
		_, err := CheckSlot(ts("09:00"), 0, window, nil, durations)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("подтверждённая запись блокирует пересекающиеся слоты", func(t *testing.T) {
		confirmed := []*Booking{confirmedBooking("10:00", "Box Braids")}

		// 09:30 + 60 минут пересекает [10:00, 11:00)
		check, err := CheckSlot(ts("09:30"), 60, window, confirmed, durations)
		require.NoError(t, err)
		assert.False(t, check.Available)

		check, err = CheckSlot(ts("10:00"), 60, window, confirmed, durations)
		require.NoError(t, err)
		assert.False(t, check.Available)

		// 09:00 + 60 минут заканчивается ровно в 10:00 - конфликта нет
		check, err = CheckSlot(ts("09:00"), 60, window, confirmed, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)

		// 11:00 начинается ровно в конец записи - конфликта нет
		check, err = CheckSlot(ts("11:00"), 60, window, confirmed, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)
	})

	t.Run("pending запись не занимает календарное место", func(t *testing.T) {
		pending := &Booking{StartTime: ts("10:00"), ServiceType: "Box Braids", Status: StatusPending}

		check, err := CheckSlot(ts("10:00"), 60, window, []*Booking{pending}, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)
	})

	t.Run("длительность блокирующей записи берётся из каталога", func(t *testing.T) {
		confirmed := []*Booking{confirmedBooking("10:00", "Cornrows")} // 90 минут

		// [10:00, 11:30) пересекает 11:00
		check, err := CheckSlot(ts("11:00"), 60, window, confirmed, durations)
		require.NoError(t, err)
		assert.False(t, check.Available)

		check, err = CheckSlot(ts("11:30"), 60, window, confirmed, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)
	})

	t.Run("перерыв блокирует слоты как подтверждённая запись", func(t *testing.T) {
		withBreak := window
		withBreak.BreakStart = tsPtr("13:00")
		withBreak.BreakEnd = tsPtr("14:00")

		// 12:30 + 60 минут заезжает на перерыв
		check, err := CheckSlot(ts("12:30"), 60, withBreak, nil, durations)
		require.NoError(t, err)
		assert.False(t, check.Available)

		// 12:00 заканчивается ровно в начало перерыва
		check, err = CheckSlot(ts("12:00"), 60, withBreak, nil, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)

		// 14:00 начинается ровно в конец перерыва
		check, err = CheckSlot(ts("14:00"), 60, withBreak, nil, durations)
		require.NoError(t, err)
		assert.True(t, check.Available)
	})
}

func TestBuildSlots(t *testing.T) {
	durations := DurationIndex{"Box Braids": 60}

	t.Run("окно 09:00-12:00 с часовой услугой", func(t *testing.T) {
		window := DayWindow{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("12:00")}

		slots, err := BuildSlots(window, 60, nil, durations)
		require.NoError(t, err)

		starts := make([]types.TimeString, len(slots))
		for i, s := range slots {
			starts[i] = s.StartTime
			assert.True(t, s.Available, "slot %s", s.StartTime)
		}
		// 11:30 не попадает в выдачу: услуга не успеет до закрытия
		assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, starts)
	})

	t.Run("подтверждённая запись делает слоты недоступными", func(t *testing.T) {
		window := DayWindow{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("12:00")}
		confirmed := []*Booking{confirmedBooking("10:00", "Box Braids")}

		slots, err := BuildSlots(window, 60, confirmed, durations)
		require.NoError(t, err)

		byStart := make(map[types.TimeString]bool, len(slots))
		for _, s := range slots {
			byStart[s.StartTime] = s.Available
		}
		assert.True(t, byStart["09:00"])
		assert.False(t, byStart["09:30"])
		assert.False(t, byStart["10:00"])
		assert.False(t, byStart["10:30"])
		assert.True(t, byStart["11:00"])
	})

	t.Run("закрытый день - пустой список, не ошибка", func(t *testing.T) {
		slots, err := BuildSlots(DayWindow{}, 60, nil, durations)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("окно у полуночи - пустой список, не ошибка", func(t *testing.T) {
		// Первый же кандидат заканчивается за полуночью
		window := DayWindow{IsOpen: true, OpenTime: ts("23:30"), CloseTime: ts("23:59")}

		slots, err := BuildSlots(window, 60, nil, durations)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}
