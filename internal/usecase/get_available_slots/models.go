package get_available_slots

import (
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги из каталога
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time         // Дата, на которую запрашивались слоты
	ServiceID       int64             // ID услуги
	ServiceName     string            // Название услуги
	DurationMinutes int               // Длительность услуги в минутах
	Slots           []domain.TimeSlot // Сетка слотов с флагом доступности
}
