package create_booking

import (
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	getSlotGrid "github.com/m04kA/Clinic-SchedulingService/internal/usecase/get_slot_grid"
	submitBooking "github.com/m04kA/Clinic-SchedulingService/internal/usecase/submit_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Source   string  `json:"source"` // "appointment" или "rental"
	DoctorID *int64  `json:"doctorId,omitempty"`
	RoomID   *int64  `json:"roomId,omitempty"`
	StartAt  string  `json:"startAt"` // RFC 3339
	EndAt    string  `json:"endAt"`   // RFC 3339
	Notes    *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	GroupID  string       `json:"groupId"`
	Bookings []BookingRow `json:"bookings"`
	Payment  *PaymentRow  `json:"payment,omitempty"`
}

// BookingRow одна строка зафиксированного бронирования
type BookingRow struct {
	ID           int64   `json:"id"`
	ResourceKind string  `json:"resourceKind"`
	ResourceID   int64   `json:"resourceId"`
	ResourceName string  `json:"resourceName"`
	UserID       int64   `json:"userId"`
	Source       string  `json:"source"`
	StartAt      string  `json:"startAt"`
	EndAt        string  `json:"endAt"`
	Status       string  `json:"status"`
	Fee          float64 `json:"fee"`
	Currency     string  `json:"currency,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// PaymentRow платёжная запись приёма
type PaymentRow struct {
	ID          int64   `json:"id"`
	BookingID   int64   `json:"bookingId"`
	ExternalRef string  `json:"externalRef"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
}

// ConflictResponse ответ 409: отказ и свежая сетка слотов на тот же день
type ConflictResponse struct {
	Message  string      `json:"message"`
	SlotGrid interface{} `json:"slotGrid,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*submitBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		UserID:   userID,
		Source:   domain.BookingSource(r.Source),
		DoctorID: r.DoctorID,
		RoomID:   r.RoomID,
		StartAt:  startAt,
		EndAt:    endAt,
		Notes:    r.Notes,
	}, nil
}

// PrimaryGridRequest строит запрос сетки для основного ресурса заявки
// (врач для приёма, кабинет для аренды) на день начала бронирования
func (r *CreateBookingRequest) PrimaryGridRequest() (*getSlotGrid.Request, bool) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, false
	}

	switch domain.BookingSource(r.Source) {
	case domain.SourceAppointment:
		if r.DoctorID == nil {
			return nil, false
		}
		return &getSlotGrid.Request{
			ResourceKind: domain.KindDoctor,
			ResourceID:   *r.DoctorID,
			Date:         startAt,
		}, true
	case domain.SourceRental:
		if r.RoomID == nil {
			return nil, false
		}
		return &getSlotGrid.Request{
			ResourceKind: domain.KindRoom,
			ResourceID:   *r.RoomID,
			Date:         startAt,
		}, true
	default:
		return nil, false
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	rows := make([]BookingRow, len(resp.Bookings))
	for i, b := range resp.Bookings {
		rows[i] = BookingRow{
			ID:           b.ID,
			ResourceKind: b.ResourceKind,
			ResourceID:   b.ResourceID,
			ResourceName: b.ResourceName,
			UserID:       b.UserID,
			Source:       b.Source,
			StartAt:      b.StartAt.Format(time.RFC3339),
			EndAt:        b.EndAt.Format(time.RFC3339),
			Status:       b.Status,
			Fee:          b.Fee,
			Currency:     b.Currency,
			Notes:        b.Notes,
			CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		}
	}

	response := &BookingResponse{
		GroupID:  resp.GroupID,
		Bookings: rows,
	}

	if resp.Payment != nil {
		response.Payment = &PaymentRow{
			ID:          resp.Payment.ID,
			BookingID:   resp.Payment.BookingID,
			ExternalRef: resp.Payment.ExternalRef,
			Amount:      resp.Payment.Amount,
			Currency:    resp.Payment.Currency,
			Status:      resp.Payment.Status,
		}
	}

	return response
}
