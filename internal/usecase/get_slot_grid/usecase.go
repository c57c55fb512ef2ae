package get_slot_grid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	directoryClient "github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
)

// UseCase use case для построения сетки слотов ресурса на день
type UseCase struct {
	bookingRepo     BookingRepository
	configRepo      ConfigRepository
	directoryClient DirectoryServiceClient
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	directoryClient DirectoryServiceClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		configRepo:      configRepo,
		directoryClient: directoryClient,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute строит сетку слотов: каждый слот либо целиком свободен, либо занят.
// Сетка носит справочный характер — авторитетная проверка выполняется
// при фиксации бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotGrid: kind=%s, resource=%d, date=%s",
		req.ResourceKind, req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotGrid: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование ресурса в справочнике
	resourceName, err := uc.directoryClient.ResolveResourceName(ctx, req.ResourceKind, req.ResourceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrResourceNotFound) {
			uc.logger.Warn("GetSlotGrid: resource %s/%d not found", req.ResourceKind, req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetSlotGrid: failed to resolve resource %s/%d: %v", req.ResourceKind, req.ResourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrResourceLookupFailed, err)
	}

	// 4. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.ResourceKind, ptr.Ptr(req.ResourceID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetSlotGrid: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = domain.DefaultScheduleConfig(req.ResourceKind)
		uc.logger.Info("GetSlotGrid: using default config for %s/%d", req.ResourceKind, req.ResourceID)
	} else {
		uc.logger.Info("GetSlotGrid: using config id=%d", config.ID)
	}

	// 5. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetSlotGrid: date validation failed: %v", err)
		return nil, err
	}

	// 6. Вычисляем границы сетки в таймзоне клиники
	gridStart, err := config.DayStart.OnDay(req.Date, uc.location)
	if err != nil {
		uc.logger.Error("GetSlotGrid: invalid day start %q: %v", config.DayStart, err)
		return nil, fmt.Errorf("%w: invalid day start: %v", ErrInternal, err)
	}
	gridEnd, err := config.DayEnd.OnDay(req.Date, uc.location)
	if err != nil {
		uc.logger.Error("GetSlotGrid: invalid day end %q: %v", config.DayEnd, err)
		return nil, fmt.Errorf("%w: invalid day end: %v", ErrInternal, err)
	}

	// 7. Получаем активные бронирования, пересекающие окно сетки.
	// Полуоткрытое окно [gridStart, gridEnd) захватывает и бронирования,
	// начавшиеся до начала дня, но заканчивающиеся внутри него.
	filter := domain.ResourceBookingsFilter{
		ResourceKind: req.ResourceKind,
		ResourceID:   req.ResourceID,
		From:         &gridStart,
		To:           &gridEnd,
	}

	bookings, err := uc.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Строим сетку
	grid, err := domain.BuildSlotGrid(
		domain.Resource{Kind: req.ResourceKind, ID: req.ResourceID},
		req.Date,
		uc.location,
		config.DayStart,
		config.DayEnd,
		config.SlotDurationMinutes,
		bookings,
	)
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to build grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build grid: %v", ErrInternal, err)
	}

	// 9. Слоты, начало которых раньше now + minBookingNoticeMinutes,
	// забронировать уже нельзя — помечаем занятыми
	slots := make([]Slot, 0, len(grid.Slots))
	minBookable := now.Add(time.Duration(config.MinBookingNoticeMinutes) * time.Minute)
	for _, s := range grid.Slots {
		available := s.Available && !s.Start.Before(minBookable)
		slots = append(slots, Slot{StartAt: s.Start, EndAt: s.End, Available: available})
	}

	uc.logger.Info("GetSlotGrid: generated %d slots for %s/%d, date=%s",
		len(slots), req.ResourceKind, req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ResourceKind:        string(req.ResourceKind),
		ResourceID:          req.ResourceID,
		ResourceName:        resourceName,
		Date:                req.Date,
		SlotDurationMinutes: config.SlotDurationMinutes,
		Slots:               slots,
	}, nil
}
