package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	catalogRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/catalog"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/catalog/models"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/ptr"
)

type fakeCatalogRepo struct {
	byID      map[int64]*domain.Service
	created   *domain.Service
	updated   *domain.Service
	createErr error
	updateErr error
	nextID    int64
}

func (f *fakeCatalogRepo) Create(_ context.Context, service *domain.Service) (*domain.Service, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	service.ID = f.nextID
	f.created = service
	return service, nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.byID[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalogRepo) List(_ context.Context, onlyActive bool) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	for _, s := range f.byID {
		if onlyActive && !s.IsActive {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, _ int64, service *domain.Service) (*domain.Service, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = service
	return service, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeCatalogRepo) {
	repo := &fakeCatalogRepo{byID: make(map[int64]*domain.Service)}
	return NewService(repo, nopLogger{}), repo
}

func TestList_OnlyActive(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[1] = &domain.Service{ID: 1, Name: "Box Braids", DurationMinutes: 60, IsActive: true}
	repo.byID[2] = &domain.Service{ID: 2, Name: "Retired Style", DurationMinutes: 90, IsActive: false}

	resp, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Box Braids", resp.Services[0].Name)

	resp, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, resp.Services, 2)
}

func TestCreate_ParsesDurationText(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:     "Knotless Braids",
		Price:    180,
		Duration: "90 minutes",
	})
	require.NoError(t, err)

	assert.Equal(t, 90, resp.DurationMinutes)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 90, repo.created.DurationMinutes)
}

func TestCreate_NonNumericDurationFallsBack(t *testing.T) {
	// Нечисловой текст длительности даёт значение по умолчанию
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:     "Quick Touch-Up",
		Price:    40,
		Duration: "about an hour",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.DurationMinutes)
}

func TestCreate_TrimsName(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:     "  Cornrows  ",
		Price:    120,
		Duration: "120",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cornrows", repo.created.Name)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  *models.CreateServiceRequest
	}{
		{
			name: "empty name",
			req:  &models.CreateServiceRequest{Name: "  ", Price: 100, Duration: "60"},
		},
		{
			name: "negative price",
			req:  &models.CreateServiceRequest{Name: "Box Braids", Price: -1, Duration: "60"},
		},
		{
			name: "duration below minimum",
			req:  &models.CreateServiceRequest{Name: "Box Braids", Price: 100, Duration: "2 minutes"},
		},
		{
			name: "duration above maximum",
			req:  &models.CreateServiceRequest{Name: "Box Braids", Price: 100, Duration: "600 minutes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	svc, repo := newTestService()
	repo.createErr = catalogRepo.ErrDuplicateService

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:     "Box Braids",
		Price:    150,
		Duration: "60",
	})
	assert.ErrorIs(t, err, ErrDuplicateService)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[1] = &domain.Service{
		ID: 1, Name: "Box Braids", Price: 150, DurationMinutes: 60, IsActive: true,
	}

	resp, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		Price:    ptr.Ptr(175.0),
		Duration: ptr.Ptr("75 minutes"),
	})
	require.NoError(t, err)

	// Не переданные поля сохраняют старые значения
	assert.Equal(t, "Box Braids", resp.Name)
	assert.Equal(t, 175.0, resp.Price)
	assert.Equal(t, 75, resp.DurationMinutes)
	assert.True(t, resp.IsActive)
}

func TestUpdate_DeactivateService(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[1] = &domain.Service{ID: 1, Name: "Box Braids", DurationMinutes: 60, IsActive: true}

	resp, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 42, &models.UpdateServiceRequest{
		Price: ptr.Ptr(100.0),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpdate_InvalidDuration(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[1] = &domain.Service{ID: 1, Name: "Box Braids", DurationMinutes: 60, IsActive: true}

	_, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		Duration: ptr.Ptr("1000 minutes"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
