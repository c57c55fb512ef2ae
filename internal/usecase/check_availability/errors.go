package check_availability

import "errors"

var (
	// ErrResourceNotFound возвращается, когда врач или кабинет не найден в справочнике
	ErrResourceNotFound = errors.New("check_availability: resource not found")

	// ErrResourceLookupFailed возвращается, когда справочник недоступен.
	// В этом случае ответ об доступности не выдаётся вовсе — недоступность
	// справочника никогда не трактуется как свободный интервал.
	ErrResourceLookupFailed = errors.New("check_availability: resource lookup failed")

	// ErrInvalidInterval возвращается при некорректном интервале (start >= end)
	ErrInvalidInterval = errors.New("check_availability: invalid interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
