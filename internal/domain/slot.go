package domain

import "time"

// Slot один слот сетки доступности фиксированной ширины
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Interval возвращает интервал слота
func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// SlotGrid сетка доступности одного ресурса на один календарный день.
// Производное представление: всегда пересчитывается из свежей выборки
// бронирований, никогда не кэшируется между запросами.
type SlotGrid struct {
	ResourceKind ResourceKind
	ResourceID   int64
	Day          time.Time
	Slots        []Slot
}

// AvailableCount возвращает количество свободных слотов
func (g *SlotGrid) AvailableCount() int {
	count := 0
	for _, s := range g.Slots {
		if s.Available {
			count++
		}
	}
	return count
}
