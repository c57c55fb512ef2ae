package domain

import "errors"

// ErrUnknownResourceKind возвращается при неизвестном виде ресурса
var ErrUnknownResourceKind = errors.New("unknown resource kind")

// ResourceKind вид планируемого ресурса
type ResourceKind string

const (
	KindDoctor ResourceKind = "doctor"
	KindRoom   ResourceKind = "room"
)

// ParseResourceKind парсит вид ресурса из строки с валидацией
func ParseResourceKind(s string) (ResourceKind, error) {
	switch ResourceKind(s) {
	case KindDoctor:
		return KindDoctor, nil
	case KindRoom:
		return KindRoom, nil
	default:
		return "", ErrUnknownResourceKind
	}
}

// Resource планируемый ресурс: врач или кабинет.
// Врачи и кабинеты никогда не взаимозаменяемы, бронирование
// всегда адресует ровно один ресурс одного вида.
type Resource struct {
	Kind ResourceKind
	ID   int64
}
