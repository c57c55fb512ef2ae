package get_slot_grid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeConfigRepo struct {
	config *domain.ScheduleConfig
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ domain.ResourceKind, _ *int64) (*domain.ScheduleConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeDirectoryClient struct {
	err error
}

func (f *fakeDirectoryClient) ResolveResourceName(_ context.Context, _ domain.ResourceKind, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "Др. Иванова", nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

var testNow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func newUseCase(bookings *fakeBookingRepo, configs *fakeConfigRepo, directory *fakeDirectoryClient) *UseCase {
	uc := NewUseCase(bookings, configs, directory, time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func gridRequest() *Request {
	return &Request{
		ResourceKind: domain.KindDoctor,
		ResourceID:   10,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_DefaultGrid(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeDirectoryClient{})

	resp, err := uc.Execute(context.Background(), gridRequest())
	require.NoError(t, err)

	// Без конфигурации: 07:00-19:00, часовые слоты
	assert.Equal(t, "Др. Иванова", resp.ResourceName)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	require.Len(t, resp.Slots, 12)
	assert.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), resp.Slots[0].StartAt)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecute_BookingBlocksWholeSlots(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:           1,
				ResourceKind: domain.KindDoctor,
				ResourceID:   10,
				StartAt:      time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
				EndAt:        time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
				Status:       domain.StatusScheduled,
			},
		},
	}
	uc := newUseCase(bookings, &fakeConfigRepo{}, &fakeDirectoryClient{})

	resp, err := uc.Execute(context.Background(), gridRequest())
	require.NoError(t, err)

	assert.False(t, resp.Slots[2].Available) // 09:00
	assert.False(t, resp.Slots[3].Available) // 10:00
	assert.True(t, resp.Slots[4].Available)  // 11:00
}

func TestExecute_CustomConfig(t *testing.T) {
	configs := &fakeConfigRepo{
		config: &domain.ScheduleConfig{
			ID:                  5,
			ResourceKind:        domain.KindDoctor,
			DayStart:            "10:00",
			DayEnd:              "14:00",
			SlotDurationMinutes: 30,
		},
	}
	uc := newUseCase(&fakeBookingRepo{}, configs, &fakeDirectoryClient{})

	resp, err := uc.Execute(context.Background(), gridRequest())
	require.NoError(t, err)

	assert.Equal(t, 30, resp.SlotDurationMinutes)
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), resp.Slots[0].StartAt)
}

func TestExecute_MinNoticeBlocksNearSlots(t *testing.T) {
	configs := &fakeConfigRepo{
		config: &domain.ScheduleConfig{
			ResourceKind:            domain.KindDoctor,
			DayStart:                domain.DefaultDayStart,
			DayEnd:                  domain.DefaultDayEnd,
			SlotDurationMinutes:     60,
			MinBookingNoticeMinutes: 120,
		},
	}
	uc := newUseCase(&fakeBookingRepo{}, configs, &fakeDirectoryClient{})

	// Сетка на сегодня: now = 12:00, notice = 2 часа, бронь только с 14:00
	req := gridRequest()
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 12)
	assert.False(t, resp.Slots[6].Available) // 13:00 — раньше now+notice
	assert.True(t, resp.Slots[7].Available)  // 14:00
}

func TestExecute_DateValidation(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		uc := newUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeDirectoryClient{})

		req := gridRequest()
		req.Date = testNow.AddDate(0, 0, -1)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("beyond advance horizon", func(t *testing.T) {
		configs := &fakeConfigRepo{
			config: &domain.ScheduleConfig{
				ResourceKind:        domain.KindDoctor,
				DayStart:            domain.DefaultDayStart,
				DayEnd:              domain.DefaultDayEnd,
				SlotDurationMinutes: 60,
				AdvanceBookingDays:  7,
			},
		}
		uc := newUseCase(&fakeBookingRepo{}, configs, &fakeDirectoryClient{})

		req := gridRequest()
		req.Date = testNow.AddDate(0, 0, 30)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestExecute_ResourceErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc := newUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeDirectoryClient{err: directoryservice.ErrResourceNotFound})

		_, err := uc.Execute(context.Background(), gridRequest())
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("lookup failed", func(t *testing.T) {
		uc := newUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeDirectoryClient{err: errors.New("timeout")})

		_, err := uc.Execute(context.Background(), gridRequest())
		assert.ErrorIs(t, err, ErrResourceLookupFailed)
	})
}
