package create_booking

import (
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID    int64            // ID клиента
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала, "HH:MM"
	ServiceType string           // Название услуги из каталога
	DepositPaid bool             // Внесён ли депозит (платежи - внешняя подсистема)
	Notes       *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64
	ClientID    int64
	Date        time.Time
	StartTime   types.TimeString
	ServiceType string
	Status      string
	DepositPaid bool
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
