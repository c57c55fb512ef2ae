package models

import (
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/pkg/types"
)

// Источники эффективной конфигурации
const (
	SourceResource = "resource" // Конфигурация конкретного ресурса
	SourceKind     = "kind"     // Конфигурация вида ресурсов
	SourceDefault  = "default"  // Встроенные значения по умолчанию
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации
type UpsertConfigRequest struct {
	ResourceKind            domain.ResourceKind `json:"resourceKind"`
	ResourceID              *int64              `json:"resourceId,omitempty"` // nil = конфигурация на весь вид
	DayStart                string              `json:"dayStart"`             // "07:00"
	DayEnd                  string              `json:"dayEnd"`               // "19:00"
	SlotDurationMinutes     int                 `json:"slotDurationMinutes"`
	MinBookingNoticeMinutes int                 `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int                 `json:"advanceBookingDays"`
}

// ToDomain конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomain() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ResourceKind:            r.ResourceKind,
		ResourceID:              r.ResourceID,
		DayStart:                types.TimeString(r.DayStart),
		DayEnd:                  types.TimeString(r.DayEnd),
		SlotDurationMinutes:     r.SlotDurationMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	ID                      int64     `json:"id,omitempty"` // 0 для встроенных значений
	ResourceKind            string    `json:"resourceKind"`
	ResourceID              *int64    `json:"resourceId,omitempty"`
	DayStart                string    `json:"dayStart"`
	DayEnd                  string    `json:"dayEnd"`
	SlotDurationMinutes     int       `json:"slotDurationMinutes"`
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"`
	Source                  string    `json:"source,omitempty"` // Уровень иерархии, давший конфигурацию
	CreatedAt               time.Time `json:"createdAt,omitempty"`
	UpdatedAt               time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig, source string) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                      c.ID,
		ResourceKind:            string(c.ResourceKind),
		ResourceID:              c.ResourceID,
		DayStart:                c.DayStart.String(),
		DayEnd:                  c.DayEnd.String(),
		SlotDurationMinutes:     c.SlotDurationMinutes,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		Source:                  source,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, c := range configs {
		source := SourceKind
		if c.ResourceID != nil {
			source = SourceResource
		}
		if configResp := FromDomainConfig(c, source); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}
