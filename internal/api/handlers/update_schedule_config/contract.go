package update_schedule_config

import (
	"context"

	"github.com/m04kA/Clinic-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
