package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	scheduleRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/schedule"
	"github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule/models"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// Service сервис для работы с расписанием салона
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetSchedule возвращает недельное расписание и особые даты за период
func (s *Service) GetSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule, specials from %s to %s",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	hours, err := s.scheduleRepo.ListBusinessHours(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list business hours: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	specials, err := s.scheduleRepo.ListSpecialDates(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list special dates: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: fetched %d weekdays and %d special dates", len(hours), len(specials))
	return models.FromDomainSchedule(hours, specials), nil
}

// UpdateBusinessHours обновляет расписание одного дня недели
func (s *Service) UpdateBusinessHours(ctx context.Context, req *models.UpdateBusinessHoursRequest) (*models.BusinessHoursResponse, error) {
	s.logger.Info("UpdateBusinessHours: updating day=%d, isOpen=%t", req.DayOfWeek, req.IsOpen)

	hours, err := s.toDomainBusinessHours(req)
	if err != nil {
		s.logger.Warn("UpdateBusinessHours: validation failed for day=%d: %v", req.DayOfWeek, err)
		return nil, err
	}

	updated, err := s.scheduleRepo.UpsertBusinessHours(ctx, hours)
	if err != nil {
		s.logger.Error("UpdateBusinessHours: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpdateBusinessHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBusinessHours: successfully updated day=%d", req.DayOfWeek)
	return models.FromDomainBusinessHours(updated), nil
}

// UpsertSpecialDate устанавливает особую дату: выходной либо изменённые часы
func (s *Service) UpsertSpecialDate(ctx context.Context, req *models.UpsertSpecialDateRequest) (*models.SpecialDateResponse, error) {
	s.logger.Info("UpsertSpecialDate: upserting date=%s, isOpen=%t", req.Date, req.IsOpen)

	special, err := s.toDomainSpecialDate(req)
	if err != nil {
		s.logger.Warn("UpsertSpecialDate: validation failed for date=%s: %v", req.Date, err)
		return nil, err
	}

	updated, err := s.scheduleRepo.UpsertSpecialDate(ctx, special)
	if err != nil {
		s.logger.Error("UpsertSpecialDate: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: UpsertSpecialDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertSpecialDate: successfully upserted date=%s", req.Date)
	return models.FromDomainSpecialDate(updated), nil
}

// DeleteSpecialDate удаляет особую дату, возвращая дню его недельное расписание
func (s *Service) DeleteSpecialDate(ctx context.Context, date time.Time) error {
	s.logger.Info("DeleteSpecialDate: deleting date=%s", date.Format(domain.DateFormat))

	if err := s.scheduleRepo.DeleteSpecialDate(ctx, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrSpecialDateNotFound) {
			s.logger.Warn("DeleteSpecialDate: date=%s not found", date.Format(domain.DateFormat))
			return ErrSpecialDateNotFound
		}
		s.logger.Error("DeleteSpecialDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: DeleteSpecialDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSpecialDate: successfully deleted date=%s", date.Format(domain.DateFormat))
	return nil
}

// Вспомогательные методы

// toDomainBusinessHours валидирует запрос и собирает domain модель.
// Для открытого дня: open < close, перерыв задаётся парой и целиком
// лежит внутри рабочего окна
func (s *Service) toDomainBusinessHours(req *models.UpdateBusinessHoursRequest) (*domain.BusinessHours, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be in [0, 6]", ErrInvalidInput)
	}

	hours := &domain.BusinessHours{
		DayOfWeek: time.Weekday(req.DayOfWeek),
		IsOpen:    req.IsOpen,
	}

	if !req.IsOpen {
		return hours, nil
	}

	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}
	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidTimeRange)
	}
	hours.OpenTime = openTime
	hours.CloseTime = closeTime

	if (req.BreakStart == nil) != (req.BreakEnd == nil) {
		return nil, fmt.Errorf("%w: breakStart and breakEnd must be set together", ErrInvalidInput)
	}
	if req.BreakStart != nil {
		breakStart, err := types.NewTimeStringFromString(*req.BreakStart)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid breakStart: %v", ErrInvalidInput, err)
		}
		breakEnd, err := types.NewTimeStringFromString(*req.BreakEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid breakEnd: %v", ErrInvalidInput, err)
		}
		if !breakStart.IsBefore(breakEnd) {
			return nil, fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidTimeRange)
		}
		if breakStart.IsBefore(openTime) || breakEnd.IsAfter(closeTime) {
			return nil, fmt.Errorf("%w: break must be within business hours", ErrInvalidTimeRange)
		}
		hours.BreakStart = &breakStart
		hours.BreakEnd = &breakEnd
	}

	return hours, nil
}

// toDomainSpecialDate валидирует запрос и собирает domain модель.
// Для открытого дня часы опциональны (nil = часы дня недели),
// но если указаны, то парой и open < close
func (s *Service) toDomainSpecialDate(req *models.UpsertSpecialDateRequest) (*domain.SpecialDate, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	special := &domain.SpecialDate{
		Date:   date,
		IsOpen: req.IsOpen,
		Reason: req.Reason,
	}

	if !req.IsOpen {
		return special, nil
	}

	if (req.OpenTime == nil) != (req.CloseTime == nil) {
		return nil, fmt.Errorf("%w: openTime and closeTime must be set together", ErrInvalidInput)
	}
	if req.OpenTime != nil {
		openTime, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
		}
		closeTime, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
		}
		if !openTime.IsBefore(closeTime) {
			return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidTimeRange)
		}
		special.OpenTime = &openTime
		special.CloseTime = &closeTime
	}

	return special, nil
}
