package submit_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда врач или кабинет не найден
	// в справочнике либо помечен неактивным
	ErrResourceNotFound = errors.New("submit_booking: resource not found")

	// ErrResourceLookupFailed возвращается, когда справочник недоступен
	ErrResourceLookupFailed = errors.New("submit_booking: resource lookup failed")

	// ErrInvalidInterval возвращается при некорректном интервале (start >= end)
	ErrInvalidInterval = errors.New("submit_booking: invalid interval")

	// ErrSlotConflict возвращается, когда интервал занят конкурирующим
	// бронированием. Это штатный исход гонки, а не сбой: заявка отклонена,
	// ничего не записано.
	ErrSlotConflict = errors.New("submit_booking: slot conflict")

	// ErrCommitFailure возвращается при инфраструктурном сбое фиксации.
	// В отличие от ErrSlotConflict ничего не говорит о доступности слота.
	ErrCommitFailure = errors.New("submit_booking: commit failure")

	// ErrTooLateToBook возвращается, когда начало нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("submit_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("submit_booking: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
