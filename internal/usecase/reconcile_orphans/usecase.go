// Package reconcile_orphans фоновая сверка платёжных привязок.
//
// Приём у врача без завершённой платёжной записи — осиротевшее
// бронирование: заявка прошла фиксацию, но оплата так и не была
// завершена. По истечении льготного периода такие заявки отменяются
// целиком, освобождая слоты.
package reconcile_orphans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
)

const cancelReasonOrphaned = "payment was not finalized"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("reconcile_orphans: internal error")

// UseCase use case сверки осиротевших приёмов
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	gracePeriod  time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	gracePeriod time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		gracePeriod:  gracePeriod,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Response результат одного прохода сверки
type Response struct {
	OrphansFound      int // Найдено осиротевших приёмов
	BookingsCancelled int // Отменено строк бронирования (включая кабинеты заявок)
}

// Execute выполняет один проход сверки
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	cutoff := uc.timeProvider.Now().Add(-uc.gracePeriod)

	orphans, err := uc.bookingRepo.FindOrphanedAppointments(ctx, cutoff)
	if err != nil {
		uc.logger.Error("ReconcileOrphans: failed to find orphans: %v", err)
		return nil, fmt.Errorf("%w: failed to find orphans: %v", ErrInternal, err)
	}

	if len(orphans) == 0 {
		return &Response{}, nil
	}

	uc.logger.Info("ReconcileOrphans: found %d orphaned appointments created before %s",
		len(orphans), cutoff.Format(time.RFC3339))

	cancelled := 0
	var cancelledRows []*domain.Booking

	for _, orphan := range orphans {
		// Каждая заявка отменяется в своей транзакции: сбой на одной
		// не мешает сверке остальных
		var groupRows []*domain.Booking

		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			groupRows = groupRows[:0]

			group, err := uc.bookingRepo.GetByGroupID(txCtx, orphan.GroupID)
			if err != nil {
				return err
			}

			for _, row := range group {
				// Терминальные строки (включая completed) отмене не подлежат
				if !row.Status.CanTransitionTo(domain.StatusCancelled) {
					continue
				}
				if err := uc.bookingRepo.Cancel(txCtx, row.ID, cancelReasonOrphaned); err != nil {
					return err
				}
				groupRows = append(groupRows, row)
			}

			return nil
		})
		if err != nil {
			uc.logger.Error("ReconcileOrphans: failed to cancel group %s: %v", orphan.GroupID, err)
			continue
		}

		cancelled += len(groupRows)
		cancelledRows = append(cancelledRows, groupRows...)

		uc.logger.Info("ReconcileOrphans: cancelled orphaned booking id=%d (group=%s)",
			orphan.ID, orphan.GroupID)
	}

	// Публикуем события после коммитов (best-effort)
	for _, row := range cancelledRows {
		uc.publishCancelled(ctx, row)
	}

	return &Response{
		OrphansFound:      len(orphans),
		BookingsCancelled: cancelled,
	}, nil
}

// publishCancelled публикует событие об отмене (сбой не влияет на результат)
func (uc *UseCase) publishCancelled(ctx context.Context, booking *domain.Booking) {
	event := notifications.BookingEvent{
		BookingID:    booking.ID,
		GroupID:      booking.GroupID.String(),
		ResourceKind: string(booking.ResourceKind),
		ResourceID:   booking.ResourceID,
		UserID:       booking.UserID,
		Source:       string(booking.Source),
		StartAt:      booking.StartAt,
		EndAt:        booking.EndAt,
		Status:       string(domain.StatusCancelled),
		Reason:       cancelReasonOrphaned,
	}

	if err := uc.publisher.Publish(ctx, notifications.KeyBookingCancelled, event); err != nil {
		uc.logger.Warn("ReconcileOrphans: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
