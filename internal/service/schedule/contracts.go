package schedule

import (
	"context"
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListBusinessHours(ctx context.Context) ([]*domain.BusinessHours, error)
	UpsertBusinessHours(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error)
	ListSpecialDates(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error)
	UpsertSpecialDate(ctx context.Context, special *domain.SpecialDate) (*domain.SpecialDate, error)
	DeleteSpecialDate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
