package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
	"github.com/m04kA/Clinic-SchedulingService/pkg/txmanager"
)

const cancelReasonRescheduled = "rescheduled"

// UseCase use case для переноса бронирования на новый интервал.
//
// Перенос — составная операция в одной сериализуемой транзакции:
// старые строки заявки отменяются, новые пишутся с новым GroupID,
// платёжная запись переносится на новую строку приёма. Частичный
// перенос невозможен: конфликт на любом ресурсе откатывает всё,
// исходное бронирование остаётся в силе.
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	configRepo   ConfigRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		configRepo:   configRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, interval=[%s, %s)",
		req.BookingID, req.UserID, req.NewStartAt, req.NewEndAt)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	interval, err := domain.NewInterval(req.NewStartAt, req.NewEndAt)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var created []*domain.Booking

	// 3. Перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		// 3.1. Загружаем бронирование и все строки его заявки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("RescheduleBooking: user=%d is not the owner of booking id=%d",
				req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		if booking.Status.IsTerminal() {
			uc.logger.Warn("RescheduleBooking: booking id=%d has terminal status=%s",
				req.BookingID, booking.Status)
			return ErrNotReschedulable
		}

		group, err := uc.bookingRepo.GetByGroupID(txCtx, booking.GroupID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking group: %v", ErrInternal, err)
		}

		// 3.2. Новый интервал подчиняется той же политике времени, что и
		// первичная фиксация: конфигурация основного ресурса заявки
		// (врач для приёма, кабинет для аренды)
		policyRow := booking
		for _, row := range group {
			if row.IsActive() && row.ResourceKind == domain.KindDoctor {
				policyRow = row
				break
			}
		}

		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, policyRow.ResourceKind, ptr.Ptr(policyRow.ResourceID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultScheduleConfig(policyRow.ResourceKind)
		}

		if err := validateNotice(interval.Start, now, config.MinBookingNoticeMinutes); err != nil {
			return err
		}
		if err := validateAdvance(interval.Start, now, config.AdvanceBookingDays); err != nil {
			return err
		}

		// 3.3. Проверяем занятость нового интервала у каждого ресурса заявки.
		// Строки своей же заявки конфликтом не считаются.
		for _, row := range group {
			if !row.IsActive() {
				continue
			}

			filter := domain.ResourceBookingsFilter{
				ResourceKind: row.ResourceKind,
				ResourceID:   row.ResourceID,
				From:         &interval.Start,
				To:           &interval.End,
			}

			existing, err := uc.bookingRepo.GetByResourceWithFilter(txCtx, filter)
			if err != nil {
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			for _, other := range existing {
				if other.GroupID == booking.GroupID {
					continue
				}
				if !other.IsActive() {
					continue
				}
				if other.Interval().Overlaps(interval) {
					uc.logger.Warn("RescheduleBooking: slot conflict on %s/%d with booking id=%d",
						row.ResourceKind, row.ResourceID, other.ID)
					return ErrSlotConflict
				}
			}
		}

		// 3.4. Отменяем старые строки и пишем новые с новым GroupID
		newGroupID := uuid.New()
		for _, row := range group {
			if !row.IsActive() {
				continue
			}

			if err := uc.bookingRepo.Cancel(txCtx, row.ID, cancelReasonRescheduled); err != nil {
				return fmt.Errorf("%w: failed to cancel booking id=%d: %v", ErrCommitFailure, row.ID, err)
			}

			replacement := &domain.Booking{
				GroupID:      newGroupID,
				ResourceKind: row.ResourceKind,
				ResourceID:   row.ResourceID,
				UserID:       row.UserID,
				Source:       row.Source,
				StartAt:      interval.Start,
				EndAt:        interval.End,
				Status:       row.Status,
				ResourceName: row.ResourceName,
				Fee:          row.Fee,
				Currency:     row.Currency,
				Notes:        row.Notes,
			}

			newRow, err := uc.bookingRepo.Create(txCtx, replacement)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrSlotTaken) {
					return ErrSlotConflict
				}
				return fmt.Errorf("%w: failed to create booking: %v", ErrCommitFailure, err)
			}

			created = append(created, newRow)

			// 3.5. Переносим платёжную привязку на новую строку приёма
			if row.RequiresPayment() {
				if err := uc.movePayment(txCtx, row, newRow); err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("RescheduleBooking: booking=%d rescheduled, new group=%s",
		req.BookingID, created[0].GroupID)

	// 4. Публикуем событие после коммита (best-effort)
	uc.publishRescheduled(ctx, created[0])

	return buildResponse(created), nil
}

// movePayment аннулирует платёжную запись старой строки и создает
// новую для заменяющей строки, сохраняя сумму и валюту
func (uc *UseCase) movePayment(ctx context.Context, old, replacement *domain.Booking) error {
	if err := uc.paymentRepo.UpdateStatus(ctx, old.ID, domain.PaymentVoid); err != nil {
		return fmt.Errorf("%w: failed to void payment for booking id=%d: %v", ErrCommitFailure, old.ID, err)
	}

	record := &domain.PaymentRecord{
		BookingID:   replacement.ID,
		ExternalRef: uuid.New(),
		Amount:      replacement.Fee,
		Currency:    replacement.Currency,
		Status:      domain.PaymentPending,
	}

	if _, err := uc.paymentRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("%w: failed to create payment for booking id=%d: %v", ErrCommitFailure, replacement.ID, err)
	}

	return nil
}

// mapTxError конвертирует ошибки транзакции в ошибки usecase
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrNotReschedulable),
		errors.Is(err, ErrSlotConflict),
		errors.Is(err, ErrTooLateToBook),
		errors.Is(err, ErrDateTooFarInFuture),
		errors.Is(err, ErrCommitFailure),
		errors.Is(err, ErrInternal):
		return err
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("RescheduleBooking: lost serialization race: %v", err)
		return ErrSlotConflict
	default:
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCommitFailure, err)
	}
}

// publishRescheduled публикует событие о переносе (сбой не влияет на результат)
func (uc *UseCase) publishRescheduled(ctx context.Context, booking *domain.Booking) {
	event := notifications.BookingEvent{
		BookingID:    booking.ID,
		GroupID:      booking.GroupID.String(),
		ResourceKind: string(booking.ResourceKind),
		ResourceID:   booking.ResourceID,
		UserID:       booking.UserID,
		Source:       string(booking.Source),
		StartAt:      booking.StartAt,
		EndAt:        booking.EndAt,
		Status:       string(booking.Status),
	}

	if err := uc.publisher.Publish(ctx, notifications.KeyBookingRescheduled, event); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}

// buildResponse конвертирует результат переноса в response
func buildResponse(created []*domain.Booking) *Response {
	resp := &Response{
		GroupID:  created[0].GroupID.String(),
		Bookings: make([]BookingData, 0, len(created)),
	}

	for _, b := range created {
		resp.Bookings = append(resp.Bookings, BookingData{
			ID:           b.ID,
			ResourceKind: string(b.ResourceKind),
			ResourceID:   b.ResourceID,
			ResourceName: b.ResourceName,
			StartAt:      b.StartAt,
			EndAt:        b.EndAt,
			Status:       string(b.Status),
		})
	}

	return resp
}
