package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
)

// UseCase use case для справочной проверки доступности интервала
type UseCase struct {
	bookingRepo     BookingRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// Execute проверяет, свободен ли интервал [StartAt, EndAt) у ресурса.
// Выполняется без транзакции и без блокировок — результат справочный,
// авторитетная перепроверка происходит при фиксации бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: kind=%s, resource=%d, interval=[%s, %s)",
		req.ResourceKind, req.ResourceID, req.StartAt, req.EndAt)

	// 1. Валидация входных данных
	if req.ResourceID <= 0 {
		uc.logger.Warn("CheckAvailability: non-positive resourceID=%d", req.ResourceID)
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	interval, err := domain.NewInterval(req.StartAt, req.EndAt)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 2. Проверяем существование ресурса в справочнике.
	// Сбой справочника — ошибка, а не "свободно".
	if _, err := uc.directoryClient.ResolveResourceName(ctx, req.ResourceKind, req.ResourceID); err != nil {
		if errors.Is(err, directoryClient.ErrResourceNotFound) {
			uc.logger.Warn("CheckAvailability: resource %s/%d not found", req.ResourceKind, req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to resolve resource %s/%d: %v",
			req.ResourceKind, req.ResourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrResourceLookupFailed, err)
	}

	// 3. Получаем активные бронирования, пересекающие интервал
	filter := domain.ResourceBookingsFilter{
		ResourceKind: req.ResourceKind,
		ResourceID:   req.ResourceID,
		From:         &interval.Start,
		To:           &interval.End,
	}

	bookings, err := uc.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Вычисляем пересечения (с учетом исключённого бронирования)
	overlapping := domain.OverlappingBookings(bookings, interval, req.ExcludeBookingID)

	conflicts := make([]Conflict, 0, len(overlapping))
	for _, b := range overlapping {
		conflicts = append(conflicts, Conflict{
			BookingID: b.ID,
			StartAt:   b.StartAt,
			EndAt:     b.EndAt,
			Status:    string(b.Status),
		})
	}

	uc.logger.Info("CheckAvailability: %s/%d interval=[%s, %s) available=%t, conflicts=%d",
		req.ResourceKind, req.ResourceID, req.StartAt, req.EndAt, len(conflicts) == 0, len(conflicts))

	return &Response{
		ResourceKind: string(req.ResourceKind),
		ResourceID:   req.ResourceID,
		StartAt:      interval.Start,
		EndAt:        interval.End,
		Available:    len(conflicts) == 0,
		Conflicts:    conflicts,
	}, nil
}
