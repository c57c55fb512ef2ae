package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetEffectiveConfig возвращает конфигурацию ресурса с учетом иерархии:
// конкретный ресурс -> вид ресурсов -> встроенные значения по умолчанию.
// Всегда возвращает результат — отсутствие строк в БД не ошибка.
func (s *Service) GetEffectiveConfig(ctx context.Context, kind domain.ResourceKind, resourceID *int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffectiveConfig: fetching config for kind=%s, resource=%v", kind, resourceID)

	cfg, err := s.configRepo.GetConfigWithHierarchy(ctx, kind, resourceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffectiveConfig: no config for kind=%s, using defaults", kind)
			return models.FromDomainConfig(domain.DefaultScheduleConfig(kind), models.SourceDefault), nil
		}
		s.logger.Error("GetEffectiveConfig: repository error for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: GetEffectiveConfig - repository error: %v", ErrInternal, err)
	}

	source := models.SourceKind
	if cfg.ResourceID != nil {
		source = models.SourceResource
	}

	return models.FromDomainConfig(cfg, source), nil
}

// ListByKind возвращает все конфигурации вида ресурсов
// (сначала конфигурация на весь вид, затем по конкретным ресурсам)
func (s *Service) ListByKind(ctx context.Context, kind domain.ResourceKind) (*models.ConfigListResponse, error) {
	s.logger.Info("ListByKind: fetching configs for kind=%s", kind)

	configs, err := s.configRepo.GetAllByKind(ctx, kind)
	if err != nil {
		s.logger.Error("ListByKind: repository error for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: ListByKind - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfigList(configs), nil
}

// UpsertConfig создает или обновляет конфигурацию ресурса либо вида ресурсов
func (s *Service) UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpsertConfig: upserting config for kind=%s, resource=%v", req.ResourceKind, req.ResourceID)

	cfg := req.ToDomain()
	if err := validateConfig(cfg); err != nil {
		s.logger.Warn("UpsertConfig: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("UpsertConfig: repository error for kind=%s: %v", req.ResourceKind, err)
		return nil, fmt.Errorf("%w: UpsertConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertConfig: successfully upserted config id=%d", saved.ID)

	source := models.SourceKind
	if saved.ResourceID != nil {
		source = models.SourceResource
	}

	return models.FromDomainConfig(saved, source), nil
}

// DeleteConfig удаляет конфигурацию по ID
func (s *Service) DeleteConfig(ctx context.Context, id int64) error {
	s.logger.Info("DeleteConfig: deleting config id=%d", id)

	if err := s.configRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("DeleteConfig: config id=%d not found", id)
			return ErrConfigNotFound
		}
		s.logger.Error("DeleteConfig: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteConfig: successfully deleted config id=%d", id)
	return nil
}

// validateConfig валидирует поля конфигурации
func validateConfig(cfg *domain.ScheduleConfig) error {
	if cfg.ResourceID != nil && *cfg.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if err := cfg.DayStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid dayStart: %v", ErrInvalidInput, err)
	}
	if err := cfg.DayEnd.Validate(); err != nil {
		return fmt.Errorf("%w: invalid dayEnd: %v", ErrInvalidInput, err)
	}
	if !cfg.DayStart.IsBefore(cfg.DayEnd) {
		return fmt.Errorf("%w: dayEnd must be after dayStart", ErrInvalidInput)
	}

	if cfg.SlotDurationMinutes < domain.MinSlotDurationMinutes || cfg.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if cfg.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be non-negative", ErrInvalidInput)
	}

	if cfg.AdvanceBookingDays < domain.MinAdvanceBookingDays || cfg.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}
