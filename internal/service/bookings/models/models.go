package models

import (
	"errors"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetResourceBookingsRequest запрос расписания ресурса (агенда)
type GetResourceBookingsRequest struct {
	ResourceKind    domain.ResourceKind `json:"resourceKind"`
	ResourceID      int64               `json:"resourceId"`
	From            *time.Time          `json:"from,omitempty"`            // Начало окна (опционально)
	To              *time.Time          `json:"to,omitempty"`              // Конец окна (опционально)
	Status          *string             `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool                `json:"includeInactive,omitempty"` // Включить отменённые и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetResourceBookingsRequest) ToDomainFilter() (domain.ResourceBookingsFilter, error) {
	filter := domain.ResourceBookingsFilter{
		ResourceKind:    r.ResourceKind,
		ResourceID:      r.ResourceID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64     `json:"id"`
	GroupID      string    `json:"groupId"`
	ResourceKind string    `json:"resourceKind"`
	ResourceID   int64     `json:"resourceId"`
	UserID       int64     `json:"userId"`
	Source       string    `json:"source"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Status       string    `json:"status"`

	// Денормализованные данные
	ResourceName string  `json:"resourceName"`
	Fee          float64 `json:"fee"`
	Currency     string  `json:"currency,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		GroupID:            b.GroupID.String(),
		ResourceKind:       string(b.ResourceKind),
		ResourceID:         b.ResourceID,
		UserID:             b.UserID,
		Source:             string(b.Source),
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		Status:             string(b.Status),
		ResourceName:       b.ResourceName,
		Fee:                b.Fee,
		Currency:           b.Currency,
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
