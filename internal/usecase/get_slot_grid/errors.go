package get_slot_grid

import "errors"

var (
	// ErrResourceNotFound возвращается, когда врач или кабинет не найден в справочнике
	ErrResourceNotFound = errors.New("get_slot_grid: resource not found")

	// ErrResourceLookupFailed возвращается, когда справочник недоступен.
	// Недоступность справочника никогда не трактуется как доступность ресурса.
	ErrResourceLookupFailed = errors.New("get_slot_grid: resource lookup failed")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_slot_grid: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_slot_grid: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_grid: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_grid: internal error")
)
