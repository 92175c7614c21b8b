package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	scheduleRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/schedule"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/ptr"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"

	"github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	hours    []*domain.BusinessHours
	specials []*domain.SpecialDate

	upsertedHours   *domain.BusinessHours
	upsertedSpecial *domain.SpecialDate
	deletedDate     *time.Time
	deleteErr       error
}

func (f *fakeScheduleRepo) ListBusinessHours(_ context.Context) ([]*domain.BusinessHours, error) {
	return f.hours, nil
}

func (f *fakeScheduleRepo) UpsertBusinessHours(_ context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error) {
	f.upsertedHours = hours
	return hours, nil
}

func (f *fakeScheduleRepo) ListSpecialDates(_ context.Context, from, to time.Time) ([]*domain.SpecialDate, error) {
	result := make([]*domain.SpecialDate, 0)
	for _, s := range f.specials {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeScheduleRepo) UpsertSpecialDate(_ context.Context, special *domain.SpecialDate) (*domain.SpecialDate, error) {
	f.upsertedSpecial = special
	return special, nil
}

func (f *fakeScheduleRepo) DeleteSpecialDate(_ context.Context, date time.Time) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedDate = &date
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeScheduleRepo) {
	repo := &fakeScheduleRepo{}
	return NewService(repo, nopLogger{}), repo
}

func TestGetSchedule_FiltersSpecialDatesByPeriod(t *testing.T) {
	svc, repo := newTestService()
	repo.hours = []*domain.BusinessHours{
		{DayOfWeek: time.Sunday, IsOpen: false},
		{DayOfWeek: time.Tuesday, IsOpen: true, OpenTime: types.TimeString("09:00"), CloseTime: types.TimeString("18:00")},
	}
	repo.specials = []*domain.SpecialDate{
		{Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), IsOpen: false},
		{Date: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), IsOpen: false},
	}

	resp, err := svc.GetSchedule(context.Background(), &models.GetScheduleRequest{
		From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Len(t, resp.BusinessHours, 2)
	require.Len(t, resp.SpecialDates, 1)
	assert.Equal(t, "2026-03-08", resp.SpecialDates[0].Date)
}

func TestUpdateBusinessHours_OpenDayWithBreak(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.UpdateBusinessHours(context.Background(), &models.UpdateBusinessHoursRequest{
		DayOfWeek:  2,
		IsOpen:     true,
		OpenTime:   "09:00",
		CloseTime:  "18:00",
		BreakStart: ptr.Ptr("13:00"),
		BreakEnd:   ptr.Ptr("14:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.DayOfWeek)
	assert.Equal(t, "09:00", resp.OpenTime)
	require.NotNil(t, repo.upsertedHours.BreakStart)
	assert.Equal(t, "13:00", repo.upsertedHours.BreakStart.String())
}

func TestUpdateBusinessHours_ClosedDaySkipsTimes(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.UpdateBusinessHours(context.Background(), &models.UpdateBusinessHoursRequest{
		DayOfWeek: 0,
		IsOpen:    false,
	})
	require.NoError(t, err)
	assert.False(t, repo.upsertedHours.IsOpen)
}

func TestUpdateBusinessHours_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name    string
		req     *models.UpdateBusinessHoursRequest
		wantErr error
	}{
		{
			name:    "day of week out of range",
			req:     &models.UpdateBusinessHoursRequest{DayOfWeek: 7, IsOpen: false},
			wantErr: ErrInvalidInput,
		},
		{
			name: "open after close",
			req: &models.UpdateBusinessHoursRequest{
				DayOfWeek: 2, IsOpen: true, OpenTime: "18:00", CloseTime: "09:00",
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "break start without break end",
			req: &models.UpdateBusinessHoursRequest{
				DayOfWeek: 2, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00",
				BreakStart: ptr.Ptr("13:00"),
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "break outside business hours",
			req: &models.UpdateBusinessHoursRequest{
				DayOfWeek: 2, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00",
				BreakStart: ptr.Ptr("17:30"), BreakEnd: ptr.Ptr("18:30"),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "malformed time",
			req: &models.UpdateBusinessHoursRequest{
				DayOfWeek: 2, IsOpen: true, OpenTime: "9am", CloseTime: "18:00",
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateBusinessHours(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpsertSpecialDate_ClosedHoliday(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.UpsertSpecialDate(context.Background(), &models.UpsertSpecialDateRequest{
		Date:   "2026-07-04",
		IsOpen: false,
		Reason: ptr.Ptr("Independence Day"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-07-04", resp.Date)
	assert.False(t, resp.IsOpen)
	assert.False(t, repo.upsertedSpecial.IsOpen)
	assert.Nil(t, repo.upsertedSpecial.OpenTime)
}

func TestUpsertSpecialDate_ShortenedHours(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.UpsertSpecialDate(context.Background(), &models.UpsertSpecialDateRequest{
		Date:      "2026-12-31",
		IsOpen:    true,
		OpenTime:  ptr.Ptr("10:00"),
		CloseTime: ptr.Ptr("15:00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	require.NotNil(t, repo.upsertedSpecial.OpenTime)
	assert.Equal(t, "10:00", repo.upsertedSpecial.OpenTime.String())
}

func TestUpsertSpecialDate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name    string
		req     *models.UpsertSpecialDateRequest
		wantErr error
	}{
		{
			name:    "malformed date",
			req:     &models.UpsertSpecialDateRequest{Date: "31-12-2026", IsOpen: false},
			wantErr: ErrInvalidInput,
		},
		{
			name: "open time without close time",
			req: &models.UpsertSpecialDateRequest{
				Date: "2026-12-31", IsOpen: true, OpenTime: ptr.Ptr("10:00"),
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "open after close",
			req: &models.UpsertSpecialDateRequest{
				Date: "2026-12-31", IsOpen: true,
				OpenTime: ptr.Ptr("15:00"), CloseTime: ptr.Ptr("10:00"),
			},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertSpecialDate(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteSpecialDate(t *testing.T) {
	svc, repo := newTestService()
	date := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.DeleteSpecialDate(context.Background(), date))
	require.NotNil(t, repo.deletedDate)
	assert.True(t, repo.deletedDate.Equal(date))
}

func TestDeleteSpecialDate_NotFound(t *testing.T) {
	svc, repo := newTestService()
	repo.deleteErr = scheduleRepo.ErrSpecialDateNotFound

	err := svc.DeleteSpecialDate(context.Background(), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrSpecialDateNotFound)
}
