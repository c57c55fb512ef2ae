package domain

import (
	"time"

	"github.com/m04kA/Clinic-SchedulingService/pkg/types"
)

// ScheduleConfig конфигурация расписания ресурса.
// Иерархия применения:
// 1. Конфигурация конкретного ресурса (resource_kind, resource_id)
// 2. Конфигурация вида ресурса (resource_kind, NULL)
// 3. Встроенные значения по умолчанию
type ScheduleConfig struct {
	ID           int64
	ResourceKind ResourceKind
	ResourceID   *int64 // NULL = конфигурация для всех ресурсов этого вида

	// Границы рабочего дня в таймзоне клиники
	DayStart types.TimeString
	DayEnd   types.TimeString

	SlotDurationMinutes     int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultScheduleConfig возвращает конфигурацию со встроенными значениями
func DefaultScheduleConfig(kind ResourceKind) *ScheduleConfig {
	return &ScheduleConfig{
		ResourceKind:            kind,
		DayStart:                DefaultDayStart,
		DayEnd:                  DefaultDayEnd,
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		MinBookingNoticeMinutes: DefaultMinNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}

// IsKindWide возвращает true для конфигурации на весь вид ресурсов
func (c *ScheduleConfig) IsKindWide() bool {
	return c.ResourceID == nil
}

// HasAdvanceBookingLimit возвращает true при ограничении горизонта бронирования
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
