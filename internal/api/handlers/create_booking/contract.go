package create_booking

import (
	"context"

	getSlotGrid "github.com/m04kA/Clinic-SchedulingService/internal/usecase/get_slot_grid"
	submitBooking "github.com/m04kA/Clinic-SchedulingService/internal/usecase/submit_booking"
)

type SubmitBookingUseCase interface {
	Execute(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error)
}

// GetSlotGridUseCase нужен для ответа 409: вместе с отказом клиент
// получает свежую сетку, чтобы сразу предложить другой слот
type GetSlotGridUseCase interface {
	Execute(ctx context.Context, req *getSlotGrid.Request) (*getSlotGrid.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
