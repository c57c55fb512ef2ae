package notifications

import "time"

// Routing keys событий бронирования
const (
	KeyBookingCommitted   = "booking.committed"
	KeyBookingCancelled   = "booking.cancelled"
	KeyBookingRescheduled = "booking.rescheduled"
)

// BookingEvent событие жизненного цикла бронирования для внешних потребителей
// (рассылка напоминаний, WhatsApp-ссылки и прочее — вне этого сервиса)
type BookingEvent struct {
	BookingID    int64     `json:"booking_id"`
	GroupID      string    `json:"group_id"`
	ResourceKind string    `json:"resource_kind"`
	ResourceID   int64     `json:"resource_id"`
	UserID       int64     `json:"user_id"`
	Source       string    `json:"source"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
}
