package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByResourceWithFilter(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платёжных записей
type PaymentRepository interface {
	Upsert(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, kind domain.ResourceKind, resourceID *int64) (*domain.ScheduleConfig, error)
}

// DirectoryServiceClient интерфейс клиента справочника клиники
type DirectoryServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*directoryservice.Doctor, error)
	GetRoom(ctx context.Context, roomID int64) (*directoryservice.Room, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, key string, event notifications.BookingEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
