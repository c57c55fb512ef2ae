package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/Clinic-SchedulingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartAt string `json:"startAt"` // RFC 3339
	EndAt   string `json:"endAt"`   // RFC 3339
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	GroupID  string       `json:"groupId"`
	Bookings []BookingRow `json:"bookings"`
}

// BookingRow одна строка перенесённого бронирования
type BookingRow struct {
	ID           int64  `json:"id"`
	ResourceKind string `json:"resourceKind"`
	ResourceID   int64  `json:"resourceId"`
	ResourceName string `json:"resourceName"`
	StartAt      string `json:"startAt"`
	EndAt        string `json:"endAt"`
	Status       string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:  bookingID,
		UserID:     userID,
		NewStartAt: startAt,
		NewEndAt:   endAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	rows := make([]BookingRow, len(resp.Bookings))
	for i, b := range resp.Bookings {
		rows[i] = BookingRow{
			ID:           b.ID,
			ResourceKind: b.ResourceKind,
			ResourceID:   b.ResourceID,
			ResourceName: b.ResourceName,
			StartAt:      b.StartAt.Format(time.RFC3339),
			EndAt:        b.EndAt.Format(time.RFC3339),
			Status:       b.Status,
		}
	}

	return &RescheduleBookingResponse{
		GroupID:  resp.GroupID,
		Bookings: rows,
	}
}
