package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	catalogRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/catalog"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// List возвращает список услуг каталога
func (s *Service) List(ctx context.Context, onlyActive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, onlyActive=%t", onlyActive)

	services, err := s.catalogRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// Create создает новую услугу
// Длительность из запроса парсится из свободного текста в минуты
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%s", req.Name)

	service, err := s.toDomainService(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for name=%s: %v", req.Name, err)
		return nil, err
	}

	created, err := s.catalogRepo.Create(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateService) {
			s.logger.Warn("Create: duplicate service name=%s", req.Name)
			return nil, ErrDuplicateService
		}
		s.logger.Error("Create: repository error for name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d name=%s, duration=%d min",
		created.ID, created.Name, created.DurationMinutes)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу, пропуская не переданные поля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	existing, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			s.logger.Warn("Update: validation failed for id=%d: %v", id, err)
			return nil, err
		}
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			s.logger.Warn("Update: negative price for id=%d", id)
			return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
		}
		existing.Price = *req.Price
	}
	if req.Duration != nil {
		duration := domain.ParseDurationMinutes(*req.Duration)
		if err := validateDuration(duration); err != nil {
			s.logger.Warn("Update: validation failed for id=%d: %v", id, err)
			return nil, err
		}
		existing.DurationMinutes = duration
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.catalogRepo.Update(ctx, id, existing)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found during update", id)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogRepo.ErrDuplicateService) {
			s.logger.Warn("Update: duplicate service name for id=%d", id)
			return nil, ErrDuplicateService
		}
		s.logger.Error("Update: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Вспомогательные методы

func (s *Service) toDomainService(req *models.CreateServiceRequest) (*domain.Service, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	duration := domain.ParseDurationMinutes(req.Duration)
	if err := validateDuration(duration); err != nil {
		return nil, err
	}

	return &domain.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: duration,
		IsActive:        true,
	}, nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes < domain.MinServiceDurationMinutes || minutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}
