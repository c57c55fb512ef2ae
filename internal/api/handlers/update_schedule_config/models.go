package update_schedule_config

import (
	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/config/models"
)

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	ResourceID              *int64 `json:"resourceId,omitempty"` // nil = конфигурация на весь вид
	DayStart                string `json:"dayStart"`             // "07:00"
	DayEnd                  string `json:"dayEnd"`               // "19:00"
	SlotDurationMinutes     int    `json:"slotDurationMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(kind domain.ResourceKind) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		ResourceKind:            kind,
		ResourceID:              r.ResourceID,
		DayStart:                r.DayStart,
		DayEnd:                  r.DayEnd,
		SlotDurationMinutes:     r.SlotDurationMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}
