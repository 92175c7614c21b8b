package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	bookingRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/booking"
	scheduleRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/schedule"
	"github.com/robin-uz/BraidByKARI-sub000/internal/integrations/notifier"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/ptr"
)

// UseCase use case подтверждения записи администратором
//
// Подтверждение - единственный момент, когда запись начинает занимать
// календарное место, поэтому проверка конфликтов и смена статуса выполняются
// одной сериализуемой транзакцией с блокировкой записей дня: из двух
// конкурентных подтверждений пересекающихся слотов ровно одно получает
// успех, второе - ErrSlotNoLongerAvailable
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d", req.BookingID)

	var result *domain.Booking
	var transition domain.TransitionRecord

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Запись с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Машина статусов: подтверждать можно только pending
		if !domain.CanTransition(booking.Status, domain.StatusConfirmed) {
			uc.logger.Warn("ConfirmBooking: invalid transition %s -> confirmed for booking id=%d",
				booking.Status, req.BookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusConfirmed)
		}

		// 3. Эффективное окно работы на дату записи
		hours, err := uc.scheduleRepo.GetBusinessHours(txCtx, booking.Date.Weekday())
		if err != nil && !errors.Is(err, scheduleRepo.ErrBusinessHoursNotFound) {
			uc.logger.Error("ConfirmBooking: failed to get business hours: %v", err)
			return fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
		}

		special, err := uc.scheduleRepo.GetSpecialDate(txCtx, booking.Date)
		if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDateNotFound) {
			uc.logger.Error("ConfirmBooking: failed to get special date: %v", err)
			return fmt.Errorf("%w: failed to get special date: %v", ErrInternal, err)
		}

		window := domain.ResolveDayWindow(hours, special)
		if !window.IsOpen {
			// Салон мог закрыться на эту дату после создания записи
			uc.logger.Warn("ConfirmBooking: salon is closed on %s, booking id=%d",
				booking.Date.Format(domain.DateFormat), req.BookingID)
			return ErrSlotNoLongerAvailable
		}

		// 4. Остальные подтверждённые записи дня, с блокировкой (FOR UPDATE)
		confirmed, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			Date:   &booking.Date,
			Status: ptr.Ptr(domain.StatusConfirmed),
		})
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to get confirmed bookings: %v", err)
			return fmt.Errorf("%w: failed to get confirmed bookings: %v", ErrInternal, err)
		}

		others := make([]*domain.Booking, 0, len(confirmed))
		for _, b := range confirmed {
			if b.ID != booking.ID {
				others = append(others, b)
			}
		}

		// 5. Повторная проверка конфликтов: снимок, который видел клиент
		// при выборе слота, мог устареть
		services, err := uc.catalogRepo.List(txCtx, false)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to list services: %v", err)
			return fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
		}
		durations := domain.BuildDurationIndex(services)

		check, err := domain.CheckSlot(booking.StartTime, durations.Resolve(booking.ServiceType), window, others, durations)
		if err != nil {
			uc.logger.Error("ConfirmBooking: conflict check failed for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if check.Overrun || !check.Available {
			uc.logger.Warn("ConfirmBooking: slot %s %s no longer available for booking id=%d",
				booking.Date.Format(domain.DateFormat), booking.StartTime, req.BookingID)
			return ErrSlotNoLongerAvailable
		}

		// 6. CAS-переход pending -> confirmed
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusPending, domain.StatusConfirmed); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				uc.logger.Warn("ConfirmBooking: status changed concurrently for booking id=%d", req.BookingID)
				return fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
			}
			uc.logger.Error("ConfirmBooking: failed to update status for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		transition = domain.TransitionRecord{
			BookingID:  booking.ID,
			From:       booking.Status,
			To:         domain.StatusConfirmed,
			OccurredAt: uc.timeProvider.Now(),
		}

		booking.Status = domain.StatusConfirmed
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: successfully confirmed booking id=%d", result.ID)

	// Событие для подсистемы уведомлений публикуется после коммита;
	// его потеря не откатывает подтверждение
	event := notifier.BookingEvent{
		BookingID:   result.ID,
		ClientID:    result.ClientID,
		Status:      string(result.Status),
		Date:        result.Date.Format(domain.DateFormat),
		StartTime:   result.StartTime.String(),
		ServiceType: result.ServiceType,
		OccurredAt:  transition.OccurredAt,
	}
	if err := uc.notifier.PublishBookingEvent(ctx, event); err != nil {
		uc.logger.Error("ConfirmBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		Booking:    result,
		Transition: transition,
	}, nil
}
