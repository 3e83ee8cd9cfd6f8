package service

import (
	"context"
	"encoding/json"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
)

// SettingsService reads and updates the shop configuration and the
// user-editable nota sequence.
type SettingsService struct {
	settingRepo  repository.SettingRepository
	sequenceRepo repository.SequenceRepository
	hub          *notify.Hub
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingRepo repository.SettingRepository,
	sequenceRepo repository.SequenceRepository,
	hub *notify.Hub,
) *SettingsService {
	return &SettingsService{
		settingRepo:  settingRepo,
		sequenceRepo: sequenceRepo,
		hub:          hub,
	}
}

// GetShopConfig returns the stored shop configuration, falling back to
// defaults when the row is missing or unreadable.
func (s *SettingsService) GetShopConfig(ctx context.Context) (entity.ShopConfig, error) {
	cfg := entity.DefaultShopConfig()

	setting, err := s.settingRepo.Get(ctx, entity.SettingKeyShop)
	if err != nil {
		return cfg, err
	}
	if setting == nil {
		return cfg, nil
	}
	if err := json.Unmarshal(setting.Value, &cfg); err != nil {
		return entity.DefaultShopConfig(), nil
	}
	return cfg, nil
}

// UpdateShopConfig validates and stores the shop configuration.
func (s *SettingsService) UpdateShopConfig(ctx context.Context, cfg entity.ShopConfig) (entity.ShopConfig, error) {
	if cfg.GraceDays < 0 {
		return cfg, apperror.NewBadRequestError("Grace days must not be negative")
	}
	if cfg.RoundingIncrement < 1 {
		return cfg, apperror.NewBadRequestError("Rounding increment must be positive")
	}
	if cfg.DefaultDiscount < 0 {
		return cfg, apperror.NewBadRequestError("Default discount must not be negative")
	}

	if err := s.settingRepo.Set(ctx, entity.SettingKeyShop, cfg); err != nil {
		return cfg, err
	}

	s.hub.Publish(notify.TopicSettings)
	return cfg, nil
}

// GetSequence returns the nota counter state.
func (s *SettingsService) GetSequence(ctx context.Context) (*entity.NotaSequence, error) {
	seq, err := s.sequenceRepo.Get(ctx, entity.DefaultNotaSequence)
	if err != nil {
		return nil, err
	}
	if seq == nil {
		return nil, apperror.NewNotFoundError("Nota sequence")
	}
	return seq, nil
}

// UpdateSequenceInput represents the editable counter fields.
type UpdateSequenceInput struct {
	Prefix    string
	NextValue int64
	Padding   int
}

// UpdateSequence overwrites the user-editable prefix, next value and
// padding of the nota counter.
func (s *SettingsService) UpdateSequence(ctx context.Context, input UpdateSequenceInput) (*entity.NotaSequence, error) {
	if input.NextValue < 1 {
		return nil, apperror.NewBadRequestError("Next value must be positive")
	}
	if input.Padding < 1 || input.Padding > 12 {
		return nil, apperror.NewBadRequestError("Padding must be between 1 and 12")
	}

	seq, err := s.GetSequence(ctx)
	if err != nil {
		return nil, err
	}

	seq.Prefix = input.Prefix
	seq.NextValue = input.NextValue
	seq.Padding = input.Padding
	if err := s.sequenceRepo.Update(ctx, seq); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicSettings)
	return seq, nil
}
