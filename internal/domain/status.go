package domain

import "errors"

// ErrInvalidStatus возвращается при неизвестном статусе бронирования
var ErrInvalidStatus = errors.New("invalid booking status")

// BookingStatus статус жизненного цикла бронирования
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// ActiveStatuses статусы, занимающие таймлайн ресурса.
// Единственный фильтр активности в сервисе: проверка доступности и
// сетка слотов обязаны использовать ровно этот набор.
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
	StatusCompleted,
}

// InactiveStatuses статусы, освобождающие слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// forwardTransitions прямые переходы жизненного цикла.
// cancelled и no_show дополнительно достижимы из любого нетерминального статуса.
var forwardTransitions = map[BookingStatus]BookingStatus{
	StatusScheduled:  StatusConfirmed,
	StatusConfirmed:  StatusCheckedIn,
	StatusCheckedIn:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// IsActive возвращает true, если статус занимает таймлайн ресурса
func (s BookingStatus) IsActive() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// IsTerminal возвращает true для конечных статусов
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// CanTransitionTo проверяет допустимость перехода s -> to
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == StatusCancelled || to == StatusNoShow {
		return true
	}
	return forwardTransitions[s] == to
}

// ParseStatus парсит статус из строки с валидацией
func ParseStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusScheduled, StatusConfirmed, StatusCheckedIn,
		StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
