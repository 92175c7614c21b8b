package upsert_special_date

import (
	"context"

	"github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertSpecialDate(ctx context.Context, req *models.UpsertSpecialDateRequest) (*models.SpecialDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
