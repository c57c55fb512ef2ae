package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	byID    map[int64]*domain.Booking
	byGroup map[uuid.UUID][]*domain.Booking
	byUser  map[int64][]*domain.Booking

	cancelled map[int64]string
	statuses  map[int64]domain.BookingStatus
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:      map[int64]*domain.Booking{},
		byGroup:   map[uuid.UUID][]*domain.Booking{},
		byUser:    map[int64][]*domain.Booking{},
		cancelled: map[int64]string{},
		statuses:  map[int64]domain.BookingStatus{},
	}
}

func (f *fakeBookingRepo) add(b *domain.Booking) {
	f.byID[b.ID] = b
	f.byGroup[b.GroupID] = append(f.byGroup[b.GroupID], b)
	f.byUser[b.UserID] = append(f.byUser[b.UserID], b)
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetByGroupID(_ context.Context, groupID uuid.UUID) ([]*domain.Booking, error) {
	return f.byGroup[groupID], nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.byUser[userID] {
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelled[id] = reason
	return nil
}

type fakePaymentRepo struct {
	voided []int64
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, bookingID int64, status domain.PaymentStatus) error {
	if status == domain.PaymentVoid {
		f.voided = append(f.voided, bookingID)
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	events []notifications.BookingEvent
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event notifications.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeBookingRepo, payments *fakePaymentRepo, publisher *fakePublisher) *Service {
	return NewService(repo, payments, fakeTxManager{}, publisher, nopLogger{})
}

func appointmentGroup(userID int64) (*domain.Booking, *domain.Booking) {
	groupID := uuid.New()
	doctorRow := &domain.Booking{
		ID:           1,
		GroupID:      groupID,
		ResourceKind: domain.KindDoctor,
		ResourceID:   10,
		UserID:       userID,
		Source:       domain.SourceAppointment,
		StartAt:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		Status:       domain.StatusScheduled,
		ResourceName: "Др. Иванова",
	}
	roomRow := &domain.Booking{
		ID:           2,
		GroupID:      groupID,
		ResourceKind: domain.KindRoom,
		ResourceID:   4,
		UserID:       userID,
		Source:       domain.SourceAppointment,
		StartAt:      doctorRow.StartAt,
		EndAt:        doctorRow.EndAt,
		Status:       domain.StatusScheduled,
		ResourceName: "Кабинет 4",
	}
	return doctorRow, roomRow
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo()
	doctorRow, _ := appointmentGroup(7)
	repo.add(doctorRow)

	svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

	t.Run("owner sees booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Др. Иванова", resp.ResourceName)
	})

	t.Run("foreign user denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 8)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, 7)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancels whole group and voids payment", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, roomRow := appointmentGroup(7)
		repo.add(doctorRow)
		repo.add(roomRow)

		payments := &fakePaymentRepo{}
		publisher := &fakePublisher{}
		svc := newService(repo, payments, publisher)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:             7,
			CancellationReason: "не смогу прийти",
		})
		require.NoError(t, err)

		assert.Equal(t, "не смогу прийти", repo.cancelled[1])
		assert.Equal(t, "не смогу прийти", repo.cancelled[2])
		assert.Equal(t, []int64{1}, payments.voided, "аннулируется только платёж строки врача")
		assert.Len(t, publisher.events, 2)
	})

	t.Run("cancel by room row id cancels the doctor too", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, roomRow := appointmentGroup(7)
		repo.add(doctorRow)
		repo.add(roomRow)

		svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{UserID: 7, CancellationReason: "отмена"})
		require.NoError(t, err)

		assert.Contains(t, repo.cancelled, int64(1))
		assert.Contains(t, repo.cancelled, int64(2))
	})

	t.Run("foreign user denied", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, _ := appointmentGroup(7)
		repo.add(doctorRow)

		svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 8, CancellationReason: "x"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("terminal status cannot be cancelled", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, _ := appointmentGroup(7)
		doctorRow.Status = domain.StatusCompleted
		repo.add(doctorRow)

		svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 7, CancellationReason: "x"})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("forward transition", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, _ := appointmentGroup(7)
		repo.add(doctorRow)

		svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, repo.statuses[1])
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, _ := appointmentGroup(7)
		repo.add(doctorRow)

		svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "in_progress"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("no_show from non-terminal", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, _ := appointmentGroup(7)
		doctorRow.Status = domain.StatusCheckedIn
		repo.add(doctorRow)

		svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "no_show"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusNoShow, repo.statuses[1])
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newFakeBookingRepo()
		doctorRow, _ := appointmentGroup(7)
		repo.add(doctorRow)

		svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "paused"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetUserBookings(t *testing.T) {
	repo := newFakeBookingRepo()
	doctorRow, roomRow := appointmentGroup(7)
	roomRow.Status = domain.StatusCancelled
	repo.add(doctorRow)
	repo.add(roomRow)

	svc := newService(repo, &fakePaymentRepo{}, &fakePublisher{})

	t.Run("all bookings", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		status := "cancelled"
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7, Status: &status})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, "cancelled", resp.Bookings[0].Status)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		status := "bogus"
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7, Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
