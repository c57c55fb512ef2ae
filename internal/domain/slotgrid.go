package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/pkg/types"
)

// ErrInvalidRange возвращается при некорректных границах рабочего дня
var ErrInvalidRange = errors.New("invalid grid range: day end must be after day start")

// BuildSlotGrid строит сетку доступности ресурса на день day.
//
// Границы dayStart/dayEnd (HH:MM) интерпретируются в loc — таймзоне клиники;
// сами сравнения выполняются на абсолютных моментах времени, поэтому
// бронирование через полночь затрагивает только пересекающую день часть.
//
// Каждый слот изначально свободен; любое активное бронирование,
// пересекающее слот (по правилам Interval.Overlaps), помечает слот
// занятым целиком — частичное перекрытие блокирует весь слот.
// Слоты независимы, склейка занятых диапазонов — забота отображения.
func BuildSlotGrid(
	resource Resource,
	day time.Time,
	loc *time.Location,
	dayStart types.TimeString,
	dayEnd types.TimeString,
	slotMinutes int,
	bookings []*Booking,
) (*SlotGrid, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration %d minutes", ErrInvalidRange, slotMinutes)
	}

	gridStart, err := dayStart.OnDay(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: day start %q", ErrInvalidRange, dayStart)
	}
	gridEnd, err := dayEnd.OnDay(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: day end %q", ErrInvalidRange, dayEnd)
	}
	if !gridEnd.After(gridStart) {
		return nil, fmt.Errorf("%w: [%s, %s)", ErrInvalidRange, dayStart, dayEnd)
	}

	width := time.Duration(slotMinutes) * time.Minute

	slots := make([]Slot, 0)
	for cursor := gridStart; !cursor.Add(width).After(gridEnd); cursor = cursor.Add(width) {
		slot := Slot{Start: cursor.UTC(), End: cursor.Add(width).UTC(), Available: true}

		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if booking.Interval().Overlaps(slot.Interval()) {
				slot.Available = false
				break
			}
		}

		slots = append(slots, slot)
	}

	return &SlotGrid{
		ResourceKind: resource.Kind,
		ResourceID:   resource.ID,
		Day:          day,
		Slots:        slots,
	}, nil
}
