package directoryservice

import "errors"

var (
	// ErrResourceNotFound возвращается, когда врач или кабинет не найден в справочнике.
	// Отсутствующий ресурс никогда не трактуется как доступный.
	ErrResourceNotFound = errors.New("directoryservice client: resource not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directoryservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от справочника
	ErrInvalidResponse = errors.New("directoryservice client: invalid response")
)
