package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	bookingRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/booking"
	"github.com/robin-uz/BraidByKARI-sub000/internal/integrations/notifier"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/bookings/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		timeProvider: RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Клиент может видеть только свою запись, администратор - любую
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != userID && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID != req.UserID && !req.IsAdmin {
		s.logger.Warn("GetClientBookings: access denied for user=%d to client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{ClientID: &req.ClientID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetDayBookings получает расписание на дату для администратора
// Записи отсортированы по времени начала
func (s *Service) GetDayBookings(ctx context.Context, req *models.GetDayBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDayBookings: fetching bookings for date=%s, status=%v",
		req.Date.Format(domain.DateFormat), req.Status)

	filter := domain.BookingsFilter{Date: &req.Date}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetDayBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDayBookings: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayBookings: successfully fetched %d bookings for date=%s",
		len(bookings), req.Date.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись и только до её начала;
// администратор может отменить любую будущую запись.
// Отмена из pending и из confirmed разрешена, повторная отмена - нет
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.TransitionResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != req.UserID && !req.IsAdmin {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	// Машина статусов: cancelled - терминальный статус
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusCancelled)
	}

	// Отменять можно только будущие записи
	startsAt, err := booking.StartsAt(s.location)
	if err != nil {
		s.logger.Error("Cancel: failed to resolve start time for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - invalid start time: %v", ErrInternal, err)
	}
	now := s.timeProvider.Now()
	if !startsAt.After(now) {
		s.logger.Warn("Cancel: booking id=%d already occurred at %s", bookingID, startsAt)
		return nil, ErrAlreadyOccurred
	}

	// CAS на статусе: если он сменился между чтением и отменой,
	// возвращаем конфликт перехода
	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: status changed concurrently for booking id=%d", bookingID)
			return nil, fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	transition := domain.TransitionRecord{
		BookingID:  bookingID,
		From:       booking.Status,
		To:         domain.StatusCancelled,
		OccurredAt: now,
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d from status=%s", bookingID, booking.Status)

	event := notifier.BookingEvent{
		BookingID:   bookingID,
		ClientID:    booking.ClientID,
		Status:      string(domain.StatusCancelled),
		Date:        booking.Date.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
		ServiceType: booking.ServiceType,
		OccurredAt:  now,
	}
	if err := s.notifier.PublishBookingEvent(ctx, event); err != nil {
		s.logger.Error("Cancel: failed to publish event for booking id=%d: %v", bookingID, err)
	}

	return models.FromTransitionRecord(transition), nil
}
