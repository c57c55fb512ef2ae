package check_availability

import (
	"context"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByResourceWithFilter(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
}

// DirectoryServiceClient интерфейс клиента справочника клиники
type DirectoryServiceClient interface {
	ResolveResourceName(ctx context.Context, kind domain.ResourceKind, resourceID int64) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
