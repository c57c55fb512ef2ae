package reconcile_orphans

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindOrphanedAppointments(ctx context.Context, createdBefore time.Time) ([]*domain.Booking, error)
	GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
