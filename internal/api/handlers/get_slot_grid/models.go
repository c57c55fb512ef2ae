package get_slot_grid

import (
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	getSlotGrid "github.com/m04kA/Clinic-SchedulingService/internal/usecase/get_slot_grid"
)

// SlotGridResponse HTTP response model
type SlotGridResponse struct {
	ResourceKind        string     `json:"resourceKind"`
	ResourceID          int64      `json:"resourceId"`
	ResourceName        string     `json:"resourceName"`
	Date                string     `json:"date"`
	SlotDurationMinutes int        `json:"slotDurationMinutes"`
	Slots               []GridSlot `json:"slots"`
}

// GridSlot модель одного слота сетки
type GridSlot struct {
	StartAt   string `json:"startAt"` // RFC 3339
	EndAt     string `json:"endAt"`   // RFC 3339
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(kind domain.ResourceKind, resourceID int64, dateStr string) (*getSlotGrid.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlotGrid.Request{
		ResourceKind: kind,
		ResourceID:   resourceID,
		Date:         date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotGrid.Response) *SlotGridResponse {
	slots := make([]GridSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = GridSlot{
			StartAt:   slot.StartAt.Format(time.RFC3339),
			EndAt:     slot.EndAt.Format(time.RFC3339),
			Available: slot.Available,
		}
	}

	return &SlotGridResponse{
		ResourceKind:        resp.ResourceKind,
		ResourceID:          resp.ResourceID,
		ResourceName:        resp.ResourceName,
		Date:                resp.Date.Format(domain.DateFormat),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}
