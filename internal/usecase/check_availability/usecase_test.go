package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
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

func validRequest() *Request {
	return &Request{
		ResourceKind: domain.KindDoctor,
		ResourceID:   10,
		StartAt:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestExecute_FreeInterval(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeDirectoryClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_ConflictsReported(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:      55,
				StartAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
				EndAt:   time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
				Status:  domain.StatusConfirmed,
			},
			{
				ID:      56,
				StartAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
				Status:  domain.StatusCancelled, // слот освобождён
			},
		},
	}
	uc := NewUseCase(repo, &fakeDirectoryClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(55), resp.Conflicts[0].BookingID)
	assert.Equal(t, "confirmed", resp.Conflicts[0].Status)
}

func TestExecute_ExcludeBookingID(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:      55,
				StartAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
				Status:  domain.StatusScheduled,
			},
		},
	}
	uc := NewUseCase(repo, &fakeDirectoryClient{}, nopLogger{})

	req := validRequest()
	req.ExcludeBookingID = ptr.Ptr(int64(55))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Available, "своё бронирование не считается конфликтом")
}

func TestExecute_ResourceErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc := NewUseCase(&fakeBookingRepo{}, &fakeDirectoryClient{err: directoryservice.ErrResourceNotFound}, nopLogger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("lookup failure is not availability", func(t *testing.T) {
		uc := NewUseCase(&fakeBookingRepo{}, &fakeDirectoryClient{err: errors.New("connection refused")}, nopLogger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrResourceLookupFailed)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeDirectoryClient{}, nopLogger{})

	t.Run("non-positive resource id", func(t *testing.T) {
		req := validRequest()
		req.ResourceID = 0

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted interval", func(t *testing.T) {
		req := validRequest()
		req.StartAt, req.EndAt = req.EndAt, req.StartAt

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}
