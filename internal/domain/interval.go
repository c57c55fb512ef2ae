package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval возвращается при попытке создать интервал с start >= end
var ErrInvalidInterval = errors.New("invalid interval: start must be before end")

// Interval полуоткрытый временной интервал [Start, End).
// Все моменты времени — абсолютные (UTC); локальное время существует
// только на границах (конфигурация рабочего дня, отображение).
//
// Полуоткрытость означает, что бронирования "встык" легальны:
// [9:00, 10:00) и [10:00, 11:00) не пересекаются.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал с валидацией start < end
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps возвращает true, если интервалы действительно пересекаются.
// Используются строгие неравенства: интервал, заканчивающийся ровно там,
// где начинается другой, пересечением НЕ считается.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains возвращает true, если момент t лежит внутри интервала.
// Начало включено, конец исключён.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// String возвращает строковое представление интервала
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
