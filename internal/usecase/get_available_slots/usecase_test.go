package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	catalogRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/catalog"
	scheduleRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/schedule"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeScheduleRepo struct {
	hours   map[time.Weekday]*domain.BusinessHours
	special map[string]*domain.SpecialDate
}

func (f *fakeScheduleRepo) GetBusinessHours(_ context.Context, day time.Weekday) (*domain.BusinessHours, error) {
	if h, ok := f.hours[day]; ok {
		return h, nil
	}
	return nil, scheduleRepo.ErrBusinessHoursNotFound
}

func (f *fakeScheduleRepo) GetSpecialDate(_ context.Context, date time.Time) (*domain.SpecialDate, error) {
	if s, ok := f.special[date.Format(domain.DateFormat)]; ok {
		return s, nil
	}
	return nil, scheduleRepo.ErrSpecialDateNotFound
}

type fakeCatalogRepo struct {
	services []*domain.Service
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalogRepo) List(_ context.Context, _ bool) ([]*domain.Service, error) {
	return f.services, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общие данные

var (
	// Суббота
	testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsPtr(s string) *types.TimeString {
	t := types.TimeString(s)
	return &t
}

func newTestUseCase(bookings *fakeBookingRepo, schedule *fakeScheduleRepo, catalog *fakeCatalogRepo) *UseCase {
	uc := NewUseCase(bookings, schedule, catalog, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func defaultCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: []*domain.Service{
		{ID: 1, Name: "Box Braids", DurationMinutes: 60, IsActive: true},
		{ID: 2, Name: "Cornrows", DurationMinutes: 90, IsActive: true},
	}}
}

func saturdayHours(open, close string) *fakeScheduleRepo {
	return &fakeScheduleRepo{
		hours: map[time.Weekday]*domain.BusinessHours{
			time.Saturday: {DayOfWeek: time.Saturday, IsOpen: true, OpenTime: ts(open), CloseTime: ts(close)},
		},
	}
}

func TestExecute_OpenDay(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, saturdayHours("09:00", "12:00"), defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 5)
	assert.Equal(t, ts("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("11:00"), resp.Slots[4].StartTime)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
	assert.Equal(t, "Box Braids", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ConfirmedBookingBlocksSlots(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: ts("10:00"), ServiceType: "Box Braids", Status: domain.StatusConfirmed, Date: testDate},
	}}
	uc := newTestUseCase(bookings, saturdayHours("09:00", "12:00"), defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	byStart := make(map[types.TimeString]bool)
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot.Available
	}
	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.True(t, byStart["11:00"])
}

func TestExecute_PendingBookingsDoNotBlock(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: ts("10:00"), ServiceType: "Box Braids", Status: domain.StatusPending, Date: testDate},
		{StartTime: ts("10:00"), ServiceType: "Cornrows", Status: domain.StatusPending, Date: testDate},
	}}
	uc := newTestUseCase(bookings, saturdayHours("09:00", "12:00"), defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s", slot.StartTime)
	}
}

func TestExecute_BreakBlocksSlots(t *testing.T) {
	schedule := saturdayHours("09:00", "18:00")
	schedule.hours[time.Saturday].BreakStart = tsPtr("13:00")
	schedule.hours[time.Saturday].BreakEnd = tsPtr("14:00")

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	byStart := make(map[types.TimeString]bool)
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot.Available
	}
	assert.True(t, byStart["12:00"])
	assert.False(t, byStart["12:30"])
	assert.False(t, byStart["13:00"])
	assert.False(t, byStart["13:30"])
	assert.True(t, byStart["14:00"])
}

func TestExecute_ClosedDayReturnsEmptyList(t *testing.T) {
	// Воскресенье не настроено в расписании
	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, saturdayHours("09:00", "18:00"), defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SpecialDateClosesDay(t *testing.T) {
	schedule := saturdayHours("09:00", "18:00")
	reason := "holiday"
	schedule.special = map[string]*domain.SpecialDate{
		testDate.Format(domain.DateFormat): {Date: testDate, IsOpen: false, Reason: &reason},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, schedule, defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SpecialDateOverridesHours(t *testing.T) {
	schedule := saturdayHours("09:00", "18:00")
	schedule.special = map[string]*domain.SpecialDate{
		testDate.Format(domain.DateFormat): {
			Date: testDate, IsOpen: true, OpenTime: tsPtr("11:00"), CloseTime: tsPtr("13:00"),
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, schedule, defaultCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, ts("11:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("12:00"), resp.Slots[2].StartTime)
}

func TestExecute_PastDateReturnsEmptyList(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, saturdayHours("09:00", "18:00"), defaultCatalog())

	past := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: past})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, saturdayHours("09:00", "18:00"), defaultCatalog())

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, saturdayHours("09:00", "18:00"), defaultCatalog())

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
