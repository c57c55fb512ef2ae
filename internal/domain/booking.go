package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingSource источник бронирования. Влияет только на отображение и
// платёжные требования — за таймлайн ресурса оба источника конкурируют одинаково.
type BookingSource string

const (
	SourceAppointment BookingSource = "appointment"
	SourceRental      BookingSource = "rental"
)

// Booking бронирование ресурса (приём у врача или аренда кабинета).
//
// Приём с кабинетом хранится двумя строками (врач + кабинет) с общим GroupID;
// каждая строка проверяется на доступность независимо.
type Booking struct {
	ID           int64
	GroupID      uuid.UUID
	ResourceKind ResourceKind
	ResourceID   int64
	UserID       int64
	Source       BookingSource
	StartAt      time.Time
	EndAt        time.Time
	Status       BookingStatus

	// Denormalized data for history
	ResourceName string
	Fee          float64
	Currency     string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал бронирования
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartAt.UTC(), End: b.EndAt.UTC()}
}

// Resource возвращает ресурс бронирования
func (b *Booking) Resource() Resource {
	return Resource{Kind: b.ResourceKind, ID: b.ResourceID}
}

// IsActive возвращает true, если бронирование занимает таймлайн ресурса
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return !b.Status.IsTerminal()
}

// RequiresPayment возвращает true, если бронированию нужна платёжная запись
func (b *Booking) RequiresPayment() bool {
	return b.Source == SourceAppointment && b.ResourceKind == KindDoctor
}

// ResourceBookingsFilter фильтр бронирований одного ресурса.
// From/To задают полуоткрытое окно [From, To): в выборку попадают
// бронирования, интервал которых пересекает окно (а не только
// начинающиеся в нём) — бронирование через полночь видно в обоих днях.
type ResourceBookingsFilter struct {
	ResourceKind    ResourceKind
	ResourceID      int64
	From            *time.Time
	To              *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}
