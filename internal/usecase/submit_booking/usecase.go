package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	directoryClient "github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
	"github.com/m04kA/Clinic-SchedulingService/pkg/txmanager"
)

// bookingTarget один ресурс, фиксируемый заявкой
type bookingTarget struct {
	resource domain.Resource
	name     string
	fee      float64
	currency string
}

// UseCase use case для фиксации заявки на бронирование.
//
// Протокол фиксации: заявка валидируется, затем в сериализуемой
// транзакции выполняется авторитетная перепроверка занятости (FOR UPDATE),
// и строки бронирования вместе с платёжной записью пишутся атомарно.
// Проигрыш перепроверки — ErrSlotConflict (ничего не записано),
// инфраструктурный сбой — ErrCommitFailure.
type UseCase struct {
	bookingRepo     BookingRepository
	paymentRepo     PaymentRepository
	configRepo      ConfigRepository
	directoryClient DirectoryServiceClient
	txManager       TransactionManager
	publisher       EventPublisher
	commitTimeout   time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	configRepo ConfigRepository,
	directoryClient DirectoryServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	commitTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		paymentRepo:     paymentRepo,
		configRepo:      configRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		publisher:       publisher,
		commitTimeout:   commitTimeout,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case фиксации бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: user=%d, source=%s, interval=[%s, %s)",
		req.UserID, req.Source, req.StartAt, req.EndAt)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	interval, err := domain.NewInterval(req.StartAt, req.EndAt)
	if err != nil {
		uc.logger.Warn("SubmitBooking: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем ресурсы через справочник (вне транзакции)
	targets, err := uc.resolveTargets(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		created []*domain.Booking
		payment *domain.PaymentRecord
	)

	// 4. Фиксация в сериализуемой транзакции с ограничением по времени
	txCtx, cancel := context.WithTimeout(ctx, uc.commitTimeout)
	defer cancel()

	err = uc.txManager.DoSerializable(txCtx, func(txCtx context.Context) error {
		created = created[:0]
		payment = nil

		// 4.1. Конфигурация расписания основного ресурса
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, targets[0].resource.Kind, ptr.Ptr(targets[0].resource.ID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultScheduleConfig(targets[0].resource.Kind)
		}

		// 4.2. Валидация времени с учетом конфигурации
		if err := validateNotice(interval.Start, now, config.MinBookingNoticeMinutes); err != nil {
			return err
		}
		if err := validateAdvance(interval.Start, now, config.AdvanceBookingDays); err != nil {
			return err
		}

		// 4.3. Авторитетная перепроверка занятости каждого ресурса.
		// Выборка с FOR UPDATE блокирует конкурирующие заявки до конца транзакции.
		for _, target := range targets {
			filter := domain.ResourceBookingsFilter{
				ResourceKind: target.resource.Kind,
				ResourceID:   target.resource.ID,
				From:         &interval.Start,
				To:           &interval.End,
			}

			existing, err := uc.bookingRepo.GetByResourceWithFilter(txCtx, filter)
			if err != nil {
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			if !domain.IsIntervalFree(existing, interval, nil) {
				uc.logger.Warn("SubmitBooking: slot conflict on %s/%d",
					target.resource.Kind, target.resource.ID)
				return ErrSlotConflict
			}
		}

		// 4.4. Пишем строки бронирования с общим GroupID
		groupID := uuid.New()
		for _, target := range targets {
			booking := &domain.Booking{
				GroupID:      groupID,
				ResourceKind: target.resource.Kind,
				ResourceID:   target.resource.ID,
				UserID:       req.UserID,
				Source:       req.Source,
				StartAt:      interval.Start,
				EndAt:        interval.End,
				Status:       domain.StatusScheduled,
				ResourceName: target.name,
				Fee:          target.fee,
				Currency:     target.currency,
				Notes:        req.Notes,
			}

			row, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrSlotTaken) {
					// Exclusion constraint в БД — последний рубеж от гонки
					return ErrSlotConflict
				}
				return fmt.Errorf("%w: failed to create booking: %v", ErrCommitFailure, err)
			}

			created = append(created, row)
		}

		// 4.5. Платёжная запись для приёма у врача — в той же транзакции
		for _, row := range created {
			if !row.RequiresPayment() {
				continue
			}

			record, err := uc.upsertPaymentWithRetry(txCtx, row)
			if err != nil {
				return err
			}
			payment = record
		}

		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("SubmitBooking: committed group=%s, bookings=%d", created[0].GroupID, len(created))

	// 5. Публикуем событие после коммита (best-effort)
	uc.publishCommitted(ctx, created[0])

	return buildResponse(created, payment), nil
}

// resolveTargets разрешает ресурсы заявки через справочник.
// Неактивный ресурс не принимает бронирования.
func (uc *UseCase) resolveTargets(ctx context.Context, req *Request) ([]bookingTarget, error) {
	targets := make([]bookingTarget, 0, 2)

	if req.Source == domain.SourceAppointment {
		doctor, err := uc.directoryClient.GetDoctor(ctx, *req.DoctorID)
		if err != nil {
			return nil, uc.mapDirectoryError("doctor", *req.DoctorID, err)
		}
		if !doctor.IsActive {
			uc.logger.Warn("SubmitBooking: doctor id=%d is inactive", doctor.ID)
			return nil, ErrResourceNotFound
		}

		targets = append(targets, bookingTarget{
			resource: domain.Resource{Kind: domain.KindDoctor, ID: doctor.ID},
			name:     doctor.FullName,
			fee:      doctor.AppointmentFee,
			currency: doctor.Currency,
		})
	}

	if req.RoomID != nil {
		room, err := uc.directoryClient.GetRoom(ctx, *req.RoomID)
		if err != nil {
			return nil, uc.mapDirectoryError("room", *req.RoomID, err)
		}
		if !room.IsActive {
			uc.logger.Warn("SubmitBooking: room id=%d is inactive", room.ID)
			return nil, ErrResourceNotFound
		}

		targets = append(targets, bookingTarget{
			resource: domain.Resource{Kind: domain.KindRoom, ID: room.ID},
			name:     room.Name,
		})
	}

	return targets, nil
}

// upsertPaymentWithRetry пишет платёжную запись, повторяя шаг оплаты
// ровно один раз при сбое. Второй сбой — откат всей транзакции.
func (uc *UseCase) upsertPaymentWithRetry(ctx context.Context, booking *domain.Booking) (*domain.PaymentRecord, error) {
	record := &domain.PaymentRecord{
		BookingID:   booking.ID,
		ExternalRef: uuid.New(),
		Amount:      booking.Fee,
		Currency:    booking.Currency,
		Status:      domain.PaymentPending,
	}

	saved, err := uc.paymentRepo.Upsert(ctx, record)
	if err == nil {
		return saved, nil
	}

	uc.logger.Warn("SubmitBooking: payment step failed for booking id=%d, retrying once: %v", booking.ID, err)

	saved, err = uc.paymentRepo.Upsert(ctx, record)
	if err != nil {
		uc.logger.Error("SubmitBooking: payment step failed after retry for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: payment step failed: %v", ErrCommitFailure, err)
	}

	return saved, nil
}

// mapDirectoryError конвертирует ошибки справочника в ошибки usecase
func (uc *UseCase) mapDirectoryError(kind string, id int64, err error) error {
	if errors.Is(err, directoryClient.ErrResourceNotFound) {
		uc.logger.Warn("SubmitBooking: %s id=%d not found", kind, id)
		return ErrResourceNotFound
	}
	uc.logger.Error("SubmitBooking: failed to get %s id=%d: %v", kind, id, err)
	return fmt.Errorf("%w: %v", ErrResourceLookupFailed, err)
}

// mapTxError конвертирует ошибки транзакции в ошибки usecase.
// Исчерпанный повтор сериализуемой транзакции означает проигрыш
// конкурирующей заявке, а не сбой инфраструктуры.
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotConflict),
		errors.Is(err, ErrTooLateToBook),
		errors.Is(err, ErrDateTooFarInFuture),
		errors.Is(err, ErrCommitFailure),
		errors.Is(err, ErrInternal):
		return err
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("SubmitBooking: lost serialization race: %v", err)
		return ErrSlotConflict
	default:
		uc.logger.Error("SubmitBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCommitFailure, err)
	}
}

// publishCommitted публикует событие о фиксации (сбой не влияет на результат)
func (uc *UseCase) publishCommitted(ctx context.Context, booking *domain.Booking) {
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

	if err := uc.publisher.Publish(ctx, notifications.KeyBookingCommitted, event); err != nil {
		uc.logger.Warn("SubmitBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}

// buildResponse конвертирует результат фиксации в response
func buildResponse(created []*domain.Booking, payment *domain.PaymentRecord) *Response {
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
			UserID:       b.UserID,
			Source:       string(b.Source),
			StartAt:      b.StartAt,
			EndAt:        b.EndAt,
			Status:       string(b.Status),
			Fee:          b.Fee,
			Currency:     b.Currency,
			Notes:        b.Notes,
			CreatedAt:    b.CreatedAt,
		})
	}

	if payment != nil {
		resp.Payment = &PaymentData{
			ID:          payment.ID,
			BookingID:   payment.BookingID,
			ExternalRef: payment.ExternalRef.String(),
			Amount:      payment.Amount,
			Currency:    payment.Currency,
			Status:      string(payment.Status),
		}
	}

	return resp
}
