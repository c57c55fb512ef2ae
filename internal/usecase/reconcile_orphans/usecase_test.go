package reconcile_orphans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
)

type fakeBookingRepo struct {
	orphans    []*domain.Booking
	byGroup    map[uuid.UUID][]*domain.Booking
	cancelled  map[int64]string
	cancelErr  map[int64]error
	seenCutoff time.Time
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byGroup:   map[uuid.UUID][]*domain.Booking{},
		cancelled: map[int64]string{},
		cancelErr: map[int64]error{},
	}
}

func (f *fakeBookingRepo) FindOrphanedAppointments(_ context.Context, createdBefore time.Time) ([]*domain.Booking, error) {
	f.seenCutoff = createdBefore
	return f.orphans, nil
}

func (f *fakeBookingRepo) GetByGroupID(_ context.Context, groupID uuid.UUID) ([]*domain.Booking, error) {
	return f.byGroup[groupID], nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if err := f.cancelErr[id]; err != nil {
		return err
	}
	f.cancelled[id] = reason
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

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func orphanGroup(repo *fakeBookingRepo, groupID uuid.UUID, doctorID, roomID int64) *domain.Booking {
	doctorRow := &domain.Booking{
		ID:           doctorID,
		GroupID:      groupID,
		ResourceKind: domain.KindDoctor,
		ResourceID:   10,
		Source:       domain.SourceAppointment,
		Status:       domain.StatusScheduled,
	}
	roomRow := &domain.Booking{
		ID:           roomID,
		GroupID:      groupID,
		ResourceKind: domain.KindRoom,
		ResourceID:   4,
		Source:       domain.SourceAppointment,
		Status:       domain.StatusScheduled,
	}
	repo.byGroup[groupID] = []*domain.Booking{doctorRow, roomRow}
	return doctorRow
}

func TestExecute_CancelsOrphanedGroups(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.orphans = []*domain.Booking{orphanGroup(repo, uuid.New(), 1, 2)}

	publisher := &fakePublisher{}
	uc := NewUseCase(repo, fakeTxManager{}, publisher, 30*time.Minute, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.OrphansFound)
	assert.Equal(t, 2, resp.BookingsCancelled, "отменяется вся заявка, включая кабинет")
	assert.Equal(t, cancelReasonOrphaned, repo.cancelled[1])
	assert.Equal(t, cancelReasonOrphaned, repo.cancelled[2])
	assert.True(t, repo.seenCutoff.Equal(testNow.Add(-30*time.Minute)))

	require.Len(t, publisher.events, 2)
	assert.Equal(t, cancelReasonOrphaned, publisher.events[0].Reason)
	assert.Equal(t, "cancelled", publisher.events[0].Status)
}

func TestExecute_NoOrphans(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := NewUseCase(repo, fakeTxManager{}, &fakePublisher{}, 30*time.Minute, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.OrphansFound)
	assert.Zero(t, resp.BookingsCancelled)
}

func TestExecute_FailureOnOneGroupDoesNotStopOthers(t *testing.T) {
	repo := newFakeBookingRepo()
	first := orphanGroup(repo, uuid.New(), 1, 2)
	second := orphanGroup(repo, uuid.New(), 3, 4)
	repo.orphans = []*domain.Booking{first, second}
	repo.cancelErr[1] = errors.New("driver: bad connection")

	uc := NewUseCase(repo, fakeTxManager{}, &fakePublisher{}, 30*time.Minute, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.OrphansFound)
	assert.Equal(t, cancelReasonOrphaned, repo.cancelled[3])
	assert.Equal(t, cancelReasonOrphaned, repo.cancelled[4])
	assert.NotContains(t, repo.cancelled, int64(1))
}

func TestExecute_SkipsCompletedRows(t *testing.T) {
	// Завершённый приём с незакрытым платежом — вопрос биллинга,
	// а не расписания: из терминального статуса переходов нет
	repo := newFakeBookingRepo()
	groupID := uuid.New()
	orphan := orphanGroup(repo, groupID, 1, 2)
	repo.byGroup[groupID][0].Status = domain.StatusCompleted
	repo.byGroup[groupID][1].Status = domain.StatusCompleted
	repo.orphans = []*domain.Booking{orphan}

	publisher := &fakePublisher{}
	uc := NewUseCase(repo, fakeTxManager{}, publisher, 30*time.Minute, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Zero(t, resp.BookingsCancelled)
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, publisher.events)
}

func TestExecute_SkipsInactiveRows(t *testing.T) {
	repo := newFakeBookingRepo()
	groupID := uuid.New()
	orphan := orphanGroup(repo, groupID, 1, 2)
	repo.byGroup[groupID][1].Status = domain.StatusCancelled // кабинет уже отменён
	repo.orphans = []*domain.Booking{orphan}

	uc := NewUseCase(repo, fakeTxManager{}, &fakePublisher{}, 30*time.Minute, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.BookingsCancelled)
	assert.NotContains(t, repo.cancelled, int64(2))
}
