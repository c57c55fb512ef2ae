package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrNotReschedulable возвращается для бронирований в терминальном статусе
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSlotConflict возвращается, когда новый интервал занят.
	// Исходное бронирование при этом остаётся нетронутым.
	ErrSlotConflict = errors.New("reschedule_booking: slot conflict")

	// ErrInvalidInterval возвращается при некорректном новом интервале
	ErrInvalidInterval = errors.New("reschedule_booking: invalid interval")

	// ErrTooLateToBook возвращается при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("reschedule_booking: too late to book this interval")

	// ErrDateTooFarInFuture возвращается при превышении горизонта бронирования
	ErrDateTooFarInFuture = errors.New("reschedule_booking: date exceeds advance booking limit")

	// ErrCommitFailure возвращается при инфраструктурном сбое переноса
	ErrCommitFailure = errors.New("reschedule_booking: commit failure")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
