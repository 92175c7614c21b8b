package models

import (
	"errors"
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	IsAdmin            bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientBookingsRequest запрос на получение записей клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	UserID   int64   `json:"userId"`
	IsAdmin  bool    `json:"-"`
	Status   *string `json:"status,omitempty"`
}

// GetDayBookingsRequest запрос на расписание дня для администратора
type GetDayBookingsRequest struct {
	Date   time.Time `json:"date"`
	Status *string   `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID          int64  `json:"id"`
	ClientID    int64  `json:"clientId"`
	Date        string `json:"date"`      // "2026-03-14"
	StartTime   string `json:"startTime"` // "10:00"
	ServiceType string `json:"serviceType"`
	Status      string `json:"status"`
	DepositPaid bool   `json:"depositPaid"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// TransitionResponse ответ со сменой статуса записи
type TransitionResponse struct {
	BookingID  int64     `json:"bookingId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		Date:               b.Date.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		ServiceType:        b.ServiceType,
		Status:             string(b.Status),
		DepositPaid:        b.DepositPaid,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// FromTransitionRecord конвертирует запись о смене статуса в DTO
func FromTransitionRecord(t domain.TransitionRecord) *TransitionResponse {
	return &TransitionResponse{
		BookingID:  t.BookingID,
		From:       string(t.From),
		To:         string(t.To),
		OccurredAt: t.OccurredAt,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
