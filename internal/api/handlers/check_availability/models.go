package check_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	checkAvailability "github.com/m04kA/Clinic-SchedulingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceKind string     `json:"resourceKind"`
	ResourceID   int64      `json:"resourceId"`
	StartAt      string     `json:"startAt"` // RFC 3339
	EndAt        string     `json:"endAt"`   // RFC 3339
	Available    bool       `json:"available"`
	Conflicts    []Conflict `json:"conflicts"`
}

// Conflict модель пересекающегося бронирования
type Conflict struct {
	BookingID int64  `json:"bookingId"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	Status    string `json:"status"`
}

// ToUseCaseRequest создает запрос use case из параметров маршрута и query
func ToUseCaseRequest(kind domain.ResourceKind, resourceID int64, startStr, endStr, excludeStr string) (*checkAvailability.Request, error) {
	startAt, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		ResourceKind: kind,
		ResourceID:   resourceID,
		StartAt:      startAt,
		EndAt:        endAt,
	}

	if excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeBookingID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := make([]Conflict, len(resp.Conflicts))
	for i, c := range resp.Conflicts {
		conflicts[i] = Conflict{
			BookingID: c.BookingID,
			StartAt:   c.StartAt.Format(time.RFC3339),
			EndAt:     c.EndAt.Format(time.RFC3339),
			Status:    c.Status,
		}
	}

	return &AvailabilityResponse{
		ResourceKind: resp.ResourceKind,
		ResourceID:   resp.ResourceID,
		StartAt:      resp.StartAt.Format(time.RFC3339),
		EndAt:        resp.EndAt.Format(time.RFC3339),
		Available:    resp.Available,
		Conflicts:    conflicts,
	}
}
