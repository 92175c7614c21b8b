package notifier

import "time"

// BookingEvent событие изменения записи, отправляемое в сервис уведомлений
type BookingEvent struct {
	BookingID   int64     `json:"booking_id"`
	ClientID    int64     `json:"client_id"`
	Status      string    `json:"status"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	ServiceType string    `json:"service_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
