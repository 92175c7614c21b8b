package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	getAvailableSlots "github.com/robin-uz/BraidByKARI-sub000/internal/usecase/get_available_slots"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, useCase *fakeUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(useCase, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	useCase := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		ServiceID:       1,
		ServiceName:     "Box Braids",
		DurationMinutes: 60,
		Slots: []domain.TimeSlot{
			{StartTime: types.TimeString("09:00"), Available: true},
		},
	}}

	rec := doRequest(t, useCase, "/api/v1/available-slots?serviceId=1&date=2026-03-14")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"09:00"`)
}

func TestHandle_UnknownServiceIsBadRequest(t *testing.T) {
	// Неизвестная услуга - это ошибка параметров запроса, 400, как и
	// неизвестная услуга при создании записи
	useCase := &fakeUseCase{err: getAvailableSlots.ErrServiceNotFound}

	rec := doRequest(t, useCase, "/api/v1/available-slots?serviceId=42&date=2026-03-14")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ParamValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing service id", "/api/v1/available-slots?date=2026-03-14"},
		{"non-numeric service id", "/api/v1/available-slots?serviceId=abc&date=2026-03-14"},
		{"missing date", "/api/v1/available-slots?serviceId=1"},
		{"malformed date", "/api/v1/available-slots?serviceId=1&date=14.03.2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{}, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_UseCaseFailureIsInternalError(t *testing.T) {
	useCase := &fakeUseCase{err: getAvailableSlots.ErrInternal}

	rec := doRequest(t, useCase, "/api/v1/available-slots?serviceId=1&date=2026-03-14")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
