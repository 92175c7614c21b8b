package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	catalogRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/catalog"
	scheduleRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/schedule"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/ptr"
)

// UseCase use case для получения доступных слотов записи
// Операция read-only и свободна от побочных эффектов: результат - снимок,
// расхождение с моментом подтверждения закрывается повторной проверкой
// конфликтов в confirm_booking
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.DurationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%d has non-positive duration %d",
			req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service %q", ErrInvalidDuration, service.Name)
	}

	emptyResponse := &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           []domain.TimeSlot{},
	}

	// 3. На прошедшую дату слотов нет
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 4. Недельное расписание дня; отсутствие строки означает закрытый день
	hours, err := uc.scheduleRepo.GetBusinessHours(ctx, req.Date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrBusinessHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	// 5. Особая дата, если задана, переопределяет недельное расписание
	special, err := uc.scheduleRepo.GetSpecialDate(ctx, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDateNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get special date: %v", err)
		return nil, fmt.Errorf("%w: failed to get special date: %v", ErrInternal, err)
	}

	window := domain.ResolveDayWindow(hours, special)
	if !window.IsOpen {
		// Закрытый день - нормальный результат, не ошибка
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 6. Подтверждённые записи дня; pending календарное место не занимают
	confirmed, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		Date:   &req.Date,
		Status: ptr.Ptr(domain.StatusConfirmed),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Индекс длительностей для резолва service_type записей в минуты
	services, err := uc.catalogRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	// 8. Сетка слотов с проверкой конфликтов
	slots, err := domain.BuildSlots(window, service.DurationMinutes, confirmed, domain.BuildDurationIndex(services))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) {
			return nil, fmt.Errorf("%w: service %q", ErrInvalidDuration, service.Name)
		}
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
