package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	catalogRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/catalog"
	"github.com/robin-uz/BraidByKARI-sub000/internal/integrations/notifier"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/ptr"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// Фейки

type fakeBookingRepo struct {
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 1
	booking.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

type fakeCatalogRepo struct {
	byName map[string]*domain.Service
}

func (f *fakeCatalogRepo) GetByName(_ context.Context, name string) (*domain.Service, error) {
	if s, ok := f.byName[name]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type fakeNotifier struct {
	events     []notifier.BookingEvent
	publishErr error
}

func (f *fakeNotifier) PublishBookingEvent(_ context.Context, event notifier.BookingEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)
	return nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общие данные

var (
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase() (*UseCase, *fakeBookingRepo, *fakeNotifier) {
	repo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{byName: map[string]*domain.Service{
		"Box Braids": {ID: 1, Name: "Box Braids", DurationMinutes: 60, IsActive: true},
	}}
	published := &fakeNotifier{}

	uc := NewUseCase(repo, catalog, published, nopLogger{})
	uc.timeProvider = fakeTimeProvider{now: testNow}
	return uc, repo, published
}

func validRequest() *Request {
	return &Request{
		ClientID:    100,
		Date:        testDate,
		StartTime:   types.TimeString("10:00"),
		ServiceType: "Box Braids",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	uc, repo, published := newTestUseCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, domain.StatusPending, repo.created.Status)

	require.Len(t, published.events, 1)
	assert.Equal(t, int64(1), published.events[0].BookingID)
	assert.Equal(t, string(domain.StatusPending), published.events[0].Status)
}

func TestExecute_NotifierFailureDoesNotFailCreation(t *testing.T) {
	uc, repo, published := newTestUseCase()
	published.publishErr = notifier.ErrServiceDegraded

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.NotNil(t, repo.created)
}

func TestExecute_UnknownService(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	req := validRequest()
	req.ServiceType = "Dragon Braids"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownService)
	assert.Nil(t, repo.created)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc, _, _ := newTestUseCase()

	req := validRequest()
	req.Date = time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	uc, _, _ := newTestUseCase()

	req := validRequest()
	req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _ := newTestUseCase()

	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'x'
	}

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"non-positive client id", func(r *Request) { r.ClientID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "10am" }},
		{"empty service type", func(r *Request) { r.ServiceType = "" }},
		{"notes too long", func(r *Request) { r.Notes = ptr.Ptr(string(longNotes)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
