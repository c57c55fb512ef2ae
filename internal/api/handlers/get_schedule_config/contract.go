package get_schedule_config

import (
	"context"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	GetEffectiveConfig(ctx context.Context, kind domain.ResourceKind, resourceID *int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
