package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
)

// --- фейки зависимостей ---

type fakeBookingRepo struct {
	existing map[domain.ResourceKind][]*domain.Booking
	created  []*domain.Booking
	nextID   int64

	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	f.created = append(f.created, booking)
	return booking, nil
}

func (f *fakeBookingRepo) GetByResourceWithFilter(_ context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	return f.existing[filter.ResourceKind], nil
}

type fakePaymentRepo struct {
	failures int // сколько первых вызовов Upsert завершить ошибкой
	calls    int
	saved    *domain.PaymentRecord
}

func (f *fakePaymentRepo) Upsert(_ context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("payment gateway unavailable")
	}
	record.ID = 100
	f.saved = record
	return record, nil
}

type fakeConfigRepo struct {
	config *domain.ScheduleConfig
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, kind domain.ResourceKind, _ *int64) (*domain.ScheduleConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeDirectoryClient struct {
	doctors map[int64]*directoryservice.Doctor
	rooms   map[int64]*directoryservice.Room
	err     error
}

func (f *fakeDirectoryClient) GetDoctor(_ context.Context, doctorID int64) (*directoryservice.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	doctor, ok := f.doctors[doctorID]
	if !ok {
		return nil, directoryservice.ErrResourceNotFound
	}
	return doctor, nil
}

func (f *fakeDirectoryClient) GetRoom(_ context.Context, roomID int64) (*directoryservice.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, directoryservice.ErrResourceNotFound
	}
	return room, nil
}

type fakeTxManager struct {
	err error // подменяет результат транзакции, если задана
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakePublisher struct {
	events []notifications.BookingEvent
	keys   []string
}

func (f *fakePublisher) Publish(_ context.Context, key string, event notifications.BookingEvent) error {
	f.keys = append(f.keys, key)
	f.events = append(f.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

// --- окружение теста ---

type testEnv struct {
	bookings  *fakeBookingRepo
	payments  *fakePaymentRepo
	configs   *fakeConfigRepo
	directory *fakeDirectoryClient
	tx        *fakeTxManager
	publisher *fakePublisher
	useCase   *UseCase
}

var testNow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	env := &testEnv{
		bookings: &fakeBookingRepo{existing: map[domain.ResourceKind][]*domain.Booking{}},
		payments: &fakePaymentRepo{},
		configs:  &fakeConfigRepo{},
		directory: &fakeDirectoryClient{
			doctors: map[int64]*directoryservice.Doctor{
				10: {ID: 10, FullName: "Др. Иванова", AppointmentFee: 2500, Currency: "RUB", IsActive: true},
			},
			rooms: map[int64]*directoryservice.Room{
				7: {ID: 7, Name: "Кабинет 7", IsActive: true},
			},
		},
		tx:        &fakeTxManager{},
		publisher: &fakePublisher{},
	}

	env.useCase = NewUseCase(
		env.bookings,
		env.payments,
		env.configs,
		env.directory,
		env.tx,
		env.publisher,
		5*time.Second,
		nopLogger{},
	)
	env.useCase.timeProvider = &fixedTimeProvider{now: testNow}

	return env
}

func appointmentRequest() *Request {
	return &Request{
		UserID:   1,
		Source:   domain.SourceAppointment,
		DoctorID: ptr.Ptr(int64(10)),
		StartAt:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

// --- тесты ---

func TestExecute_AppointmentWithRoom(t *testing.T) {
	env := newTestEnv()

	req := appointmentRequest()
	req.RoomID = ptr.Ptr(int64(7))

	resp, err := env.useCase.Execute(context.Background(), req)
	require.NoError(t, err)

	// Две строки с общим GroupID: врач и кабинет
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "doctor", resp.Bookings[0].ResourceKind)
	assert.Equal(t, "room", resp.Bookings[1].ResourceKind)
	assert.Equal(t, "scheduled", resp.Bookings[0].Status)
	assert.Equal(t, env.bookings.created[0].GroupID, env.bookings.created[1].GroupID)

	// Платёжная запись только для строки врача
	require.NotNil(t, resp.Payment)
	assert.Equal(t, resp.Bookings[0].ID, resp.Payment.BookingID)
	assert.Equal(t, 2500.0, resp.Payment.Amount)
	assert.Equal(t, "pending", resp.Payment.Status)
	assert.Equal(t, 1, env.payments.calls)

	// Событие опубликовано после коммита
	require.Len(t, env.publisher.keys, 1)
	assert.Equal(t, notifications.KeyBookingCommitted, env.publisher.keys[0])
}

func TestExecute_RentalHasNoPayment(t *testing.T) {
	env := newTestEnv()

	resp, err := env.useCase.Execute(context.Background(), &Request{
		UserID:  2,
		Source:  domain.SourceRental,
		RoomID:  ptr.Ptr(int64(7)),
		StartAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "room", resp.Bookings[0].ResourceKind)
	assert.Nil(t, resp.Payment)
	assert.Zero(t, env.payments.calls)
}

func TestExecute_SlotConflict(t *testing.T) {
	env := newTestEnv()
	env.bookings.existing[domain.KindDoctor] = []*domain.Booking{
		{
			ID:           55,
			ResourceKind: domain.KindDoctor,
			ResourceID:   10,
			StartAt:      time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
			EndAt:        time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
			Status:       domain.StatusConfirmed,
		},
	}

	_, err := env.useCase.Execute(context.Background(), appointmentRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, env.bookings.created, "при конфликте ничего не записано")
	assert.Empty(t, env.publisher.keys)
}

func TestExecute_ExclusionConstraintMapsToConflict(t *testing.T) {
	env := newTestEnv()
	env.bookings.createErr = bookingRepo.ErrSlotTaken

	_, err := env.useCase.Execute(context.Background(), appointmentRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_PaymentRetry(t *testing.T) {
	t.Run("first failure is retried once", func(t *testing.T) {
		env := newTestEnv()
		env.payments.failures = 1

		resp, err := env.useCase.Execute(context.Background(), appointmentRequest())
		require.NoError(t, err)

		assert.Equal(t, 2, env.payments.calls)
		require.NotNil(t, resp.Payment)
	})

	t.Run("second failure rolls back the commit", func(t *testing.T) {
		env := newTestEnv()
		env.payments.failures = 2

		_, err := env.useCase.Execute(context.Background(), appointmentRequest())
		assert.ErrorIs(t, err, ErrCommitFailure)
		assert.Equal(t, 2, env.payments.calls, "ровно один повтор, не больше")
	})
}

func TestExecute_LostSerializationRace(t *testing.T) {
	env := newTestEnv()
	env.tx.err = fmt.Errorf("txmanager: exec: %w", &pq.Error{Code: "40001"})

	_, err := env.useCase.Execute(context.Background(), appointmentRequest())
	assert.ErrorIs(t, err, ErrSlotConflict, "проигрыш гонки — конфликт слота, а не сбой")
}

func TestExecute_InfrastructureFailure(t *testing.T) {
	env := newTestEnv()
	env.tx.err = errors.New("driver: bad connection")

	_, err := env.useCase.Execute(context.Background(), appointmentRequest())
	assert.ErrorIs(t, err, ErrCommitFailure)
}

func TestExecute_MinBookingNotice(t *testing.T) {
	env := newTestEnv()
	env.configs.config = &domain.ScheduleConfig{
		ResourceKind:            domain.KindDoctor,
		DayStart:                domain.DefaultDayStart,
		DayEnd:                  domain.DefaultDayEnd,
		SlotDurationMinutes:     60,
		MinBookingNoticeMinutes: 24 * 60,
	}

	req := appointmentRequest()
	req.StartAt = testNow.Add(2 * time.Hour)
	req.EndAt = testNow.Add(3 * time.Hour)

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_AdvanceBookingHorizon(t *testing.T) {
	env := newTestEnv()
	env.configs.config = &domain.ScheduleConfig{
		ResourceKind:        domain.KindDoctor,
		DayStart:            domain.DefaultDayStart,
		DayEnd:              domain.DefaultDayEnd,
		SlotDurationMinutes: 60,
		AdvanceBookingDays:  7,
	}

	req := appointmentRequest()
	req.StartAt = testNow.AddDate(0, 0, 30)
	req.EndAt = req.StartAt.Add(time.Hour)

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ResourceResolution(t *testing.T) {
	t.Run("unknown doctor", func(t *testing.T) {
		env := newTestEnv()

		req := appointmentRequest()
		req.DoctorID = ptr.Ptr(int64(999))

		_, err := env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("inactive doctor", func(t *testing.T) {
		env := newTestEnv()
		env.directory.doctors[10].IsActive = false

		_, err := env.useCase.Execute(context.Background(), appointmentRequest())
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("directory unavailable", func(t *testing.T) {
		env := newTestEnv()
		env.directory.err = errors.New("connection refused")

		_, err := env.useCase.Execute(context.Background(), appointmentRequest())
		assert.ErrorIs(t, err, ErrResourceLookupFailed)
	})
}

func TestExecute_Validation(t *testing.T) {
	env := newTestEnv()

	t.Run("appointment without doctor", func(t *testing.T) {
		req := appointmentRequest()
		req.DoctorID = nil

		_, err := env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rental with doctor", func(t *testing.T) {
		_, err := env.useCase.Execute(context.Background(), &Request{
			UserID:   1,
			Source:   domain.SourceRental,
			RoomID:   ptr.Ptr(int64(7)),
			DoctorID: ptr.Ptr(int64(10)),
			StartAt:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			EndAt:    time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("start after end", func(t *testing.T) {
		req := appointmentRequest()
		req.StartAt, req.EndAt = req.EndAt, req.StartAt

		_, err := env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}
