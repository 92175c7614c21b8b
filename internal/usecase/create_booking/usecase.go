package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	catalogRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/catalog"
	"github.com/robin-uz/BraidByKARI-sub000/internal/integrations/notifier"
)

// UseCase use case для создания записи
//
// Создание НЕ проверяет доступность слота: календарное место занимают
// только подтверждённые записи, поэтому несколько pending-записей на один
// слот допустимы до решения администратора. Конфликты отсекаются повторной
// проверкой в confirm_booking
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, date=%s, time=%s, service=%q",
		req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата записи не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Услуга должна существовать в каталоге
	service, err := uc.catalogRepo.GetByName(ctx, req.ServiceType)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: unknown service %q", req.ServiceType)
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, req.ServiceType)
		}
		uc.logger.Error("CreateBooking: failed to get service %q: %v", req.ServiceType, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Создаём запись в статусе pending
	booking := &domain.Booking{
		ClientID:    req.ClientID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		ServiceType: service.Name,
		Status:      domain.StatusPending,
		DepositPaid: req.DepositPaid,
		Notes:       req.Notes,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 5. Событие для внешней подсистемы уведомлений; её недоступность
	// не должна ломать создание записи
	event := notifier.BookingEvent{
		BookingID:   created.ID,
		ClientID:    created.ClientID,
		Status:      string(created.Status),
		Date:        created.Date.Format(domain.DateFormat),
		StartTime:   created.StartTime.String(),
		ServiceType: created.ServiceType,
		OccurredAt:  created.CreatedAt,
	}
	if err := uc.notifier.PublishBookingEvent(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", created.ID, err)
	}

	return &Response{
		ID:          created.ID,
		ClientID:    created.ClientID,
		Date:        created.Date,
		StartTime:   created.StartTime,
		ServiceType: created.ServiceType,
		Status:      string(created.Status),
		DepositPaid: created.DepositPaid,
		Notes:       created.Notes,
		CreatedAt:   created.CreatedAt,
		UpdatedAt:   created.UpdatedAt,
	}, nil
}
