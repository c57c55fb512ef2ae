package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/config/models"
	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
)

type fakeConfigRepo struct {
	config   *domain.ScheduleConfig
	upserted *domain.ScheduleConfig
}

func (f *fakeConfigRepo) GetByResource(_ context.Context, _ domain.ResourceKind, _ *int64) (*domain.ScheduleConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ domain.ResourceKind, _ *int64) (*domain.ScheduleConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

func (f *fakeConfigRepo) GetAllByKind(_ context.Context, _ domain.ResourceKind) ([]*domain.ScheduleConfig, error) {
	if f.config == nil {
		return nil, nil
	}
	return []*domain.ScheduleConfig{f.config}, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	cfg.ID = 5
	f.upserted = cfg
	return cfg, nil
}

func (f *fakeConfigRepo) Delete(_ context.Context, _ int64) error {
	if f.config == nil {
		return configRepo.ErrConfigNotFound
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validUpsertRequest() *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		ResourceKind:        domain.KindDoctor,
		ResourceID:          ptr.Ptr(int64(10)),
		DayStart:            "08:00",
		DayEnd:              "20:00",
		SlotDurationMinutes: 30,
		AdvanceBookingDays:  14,
	}
}

func TestGetEffectiveConfig(t *testing.T) {
	t.Run("resource-level config", func(t *testing.T) {
		repo := &fakeConfigRepo{
			config: &domain.ScheduleConfig{
				ID:                  5,
				ResourceKind:        domain.KindDoctor,
				ResourceID:          ptr.Ptr(int64(10)),
				DayStart:            "08:00",
				DayEnd:              "20:00",
				SlotDurationMinutes: 30,
			},
		}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetEffectiveConfig(context.Background(), domain.KindDoctor, ptr.Ptr(int64(10)))
		require.NoError(t, err)
		assert.Equal(t, models.SourceResource, resp.Source)
		assert.Equal(t, "08:00", resp.DayStart)
	})

	t.Run("kind-level config", func(t *testing.T) {
		repo := &fakeConfigRepo{
			config: &domain.ScheduleConfig{
				ID:                  6,
				ResourceKind:        domain.KindRoom,
				DayStart:            "09:00",
				DayEnd:              "18:00",
				SlotDurationMinutes: 60,
			},
		}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetEffectiveConfig(context.Background(), domain.KindRoom, ptr.Ptr(int64(4)))
		require.NoError(t, err)
		assert.Equal(t, models.SourceKind, resp.Source)
	})

	t.Run("built-in defaults", func(t *testing.T) {
		svc := NewService(&fakeConfigRepo{}, nopLogger{})

		resp, err := svc.GetEffectiveConfig(context.Background(), domain.KindDoctor, ptr.Ptr(int64(10)))
		require.NoError(t, err)
		assert.Equal(t, models.SourceDefault, resp.Source)
		assert.Equal(t, "07:00", resp.DayStart)
		assert.Equal(t, "19:00", resp.DayEnd)
		assert.Equal(t, 60, resp.SlotDurationMinutes)
	})
}

func TestUpsertConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		repo := &fakeConfigRepo{}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpsertConfig(context.Background(), validUpsertRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, models.SourceResource, resp.Source)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(&fakeConfigRepo{}, nopLogger{})

		tests := []struct {
			name   string
			mutate func(req *models.UpsertConfigRequest)
		}{
			{"bad dayStart format", func(r *models.UpsertConfigRequest) { r.DayStart = "8am" }},
			{"dayEnd before dayStart", func(r *models.UpsertConfigRequest) { r.DayStart, r.DayEnd = r.DayEnd, r.DayStart }},
			{"slot too short", func(r *models.UpsertConfigRequest) { r.SlotDurationMinutes = 1 }},
			{"slot too long", func(r *models.UpsertConfigRequest) { r.SlotDurationMinutes = 600 }},
			{"negative notice", func(r *models.UpsertConfigRequest) { r.MinBookingNoticeMinutes = -1 }},
			{"horizon too far", func(r *models.UpsertConfigRequest) { r.AdvanceBookingDays = 1000 }},
			{"non-positive resource id", func(r *models.UpsertConfigRequest) { r.ResourceID = ptr.Ptr(int64(0)) }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validUpsertRequest()
				tt.mutate(req)

				_, err := svc.UpsertConfig(context.Background(), req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})

	t.Run("kind-wide config", func(t *testing.T) {
		repo := &fakeConfigRepo{}
		svc := NewService(repo, nopLogger{})

		req := validUpsertRequest()
		req.ResourceID = nil

		resp, err := svc.UpsertConfig(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, models.SourceKind, resp.Source)
		assert.Nil(t, repo.upserted.ResourceID)
	})
}
