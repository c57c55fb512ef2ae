package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetResourceBookings получает расписание ресурса с гибкой фильтрацией.
// Окно [From, To) полуоткрытое: попадают бронирования, пересекающие окно,
// а не только начинающиеся в нём.
//
// Примеры использования:
// - Агенда врача на день: From и To — границы дня
// - Только запланированные: Status = "scheduled"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetResourceBookings(ctx context.Context, req *models.GetResourceBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetResourceBookings: fetching bookings for %s/%d", req.ResourceKind, req.ResourceID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetResourceBookings: invalid filter for %s/%d: %v", req.ResourceKind, req.ResourceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceBookings: repository error for %s/%d: %v", req.ResourceKind, req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetResourceBookings: successfully fetched %d bookings for %s/%d",
		len(bookings), req.ResourceKind, req.ResourceID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет заявку целиком: все активные строки группы
// (врач и кабинет одного приёма) отменяются атомарно, платёжная
// запись приёма аннулируется
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	var cancelledRows []*domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		group, err := s.bookingRepo.GetByGroupID(txCtx, booking.GroupID)
		if err != nil {
			return fmt.Errorf("%w: Cancel - failed to get group: %v", ErrInternal, err)
		}

		for _, row := range group {
			if !row.IsActive() {
				continue
			}

			if err := s.bookingRepo.Cancel(txCtx, row.ID, req.CancellationReason); err != nil {
				return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
			}

			if row.RequiresPayment() {
				if err := s.paymentRepo.UpdateStatus(txCtx, row.ID, domain.PaymentVoid); err != nil {
					return fmt.Errorf("%w: Cancel - failed to void payment: %v", ErrInternal, err)
				}
			}

			cancelledRows = append(cancelledRows, row)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d (%d rows)", bookingID, len(cancelledRows))

	// Публикуем события после коммита (best-effort)
	for _, row := range cancelledRows {
		s.publishCancelled(ctx, row, req.CancellationReason)
	}

	return nil
}

// UpdateStatus переводит бронирование в новый статус жизненного цикла.
// Переход валидируется машиной состояний: вперёд только по цепочке
// scheduled -> confirmed -> checked_in -> in_progress -> completed,
// отмена и неявка — из любого нетерминального статуса.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// publishCancelled публикует событие об отмене (сбой не влияет на результат)
func (s *Service) publishCancelled(ctx context.Context, booking *domain.Booking, reason string) {
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
		Reason:       reason,
	}

	if err := s.publisher.Publish(ctx, notifications.KeyBookingCancelled, event); err != nil {
		s.logger.Warn("Cancel: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
