package create_booking

import (
	"time"

	"github.com/robin-uz/BraidByKARI-sub000/internal/domain"
	createBooking "github.com/robin-uz/BraidByKARI-sub000/internal/usecase/create_booking"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date        string  `json:"date"`      // "2026-03-14"
	StartTime   string  `json:"startTime"` // "10:00"
	ServiceType string  `json:"serviceType"`
	DepositPaid bool    `json:"depositPaid"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"clientId"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	ServiceType string    `json:"serviceType"`
	Status      string    `json:"status"`
	DepositPaid bool      `json:"depositPaid"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:    clientID,
		Date:        date,
		StartTime:   startTime,
		ServiceType: r.ServiceType,
		DepositPaid: r.DepositPaid,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		ClientID:    resp.ClientID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		ServiceType: resp.ServiceType,
		Status:      resp.Status,
		DepositPaid: resp.DepositPaid,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}
