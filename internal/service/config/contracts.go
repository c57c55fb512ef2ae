package config

import (
	"context"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByResource(ctx context.Context, kind domain.ResourceKind, resourceID *int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, kind domain.ResourceKind, resourceID *int64) (*domain.ScheduleConfig, error)
	GetAllByKind(ctx context.Context, kind domain.ResourceKind) ([]*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
