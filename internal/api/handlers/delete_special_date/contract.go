package delete_special_date

import (
	"context"
	"time"
)

type ScheduleService interface {
	DeleteSpecialDate(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
