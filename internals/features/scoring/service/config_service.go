package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	scoringModel "talenthub_backend/internals/features/scoring/model"
)

// ActiveOrDefaultConfig returns the single active config, lazily creating
// and activating a default profile when none exists yet.
func (s *Service) ActiveOrDefaultConfig() (*scoringModel.ScoringConfigModel, error) {
	var cfg scoringModel.ScoringConfigModel
	err := s.DB.Where("scoring_config_is_active = ?", true).First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load active config: %w", err)
	}

	cfg = scoringModel.ScoringConfigModel{
		ScoringConfigName:      "default",
		ScoringConfigAlgorithm: scoringModel.DefaultAlgorithm,
		ScoringConfigIsActive:  true,
	}
	if err := cfg.SetWeights(scoringModel.DefaultWeights()); err != nil {
		return nil, err
	}
	if err := s.DB.Create(&cfg).Error; err != nil {
		return nil, fmt.Errorf("create default config: %w", err)
	}
	return &cfg, nil
}

type ConfigInput struct {
	Name        string
	Algorithm   string
	Weights     scoringModel.FactorWeights
	Constraints datatypes.JSON
}

func (s *Service) CreateConfig(in ConfigInput) (*scoringModel.ScoringConfigModel, error) {
	algorithm := in.Algorithm
	if algorithm == "" {
		algorithm = scoringModel.DefaultAlgorithm
	}
	cfg := scoringModel.ScoringConfigModel{
		ScoringConfigName:        in.Name,
		ScoringConfigAlgorithm:   algorithm,
		ScoringConfigConstraints: in.Constraints,
	}
	if err := cfg.SetWeights(in.Weights); err != nil {
		return nil, err
	}
	if err := s.DB.Create(&cfg).Error; err != nil {
		return nil, fmt.Errorf("create config: %w", err)
	}
	return &cfg, nil
}

func (s *Service) GetConfig(id uuid.UUID) (*scoringModel.ScoringConfigModel, error) {
	var cfg scoringModel.ScoringConfigModel
	if err := s.DB.Where("scoring_config_id = ?", id).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

func (s *Service) ListConfigs(offset, limit int) ([]scoringModel.ScoringConfigModel, int64, error) {
	var total int64
	if err := s.DB.Model(&scoringModel.ScoringConfigModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []scoringModel.ScoringConfigModel
	err := s.DB.Order("scoring_config_created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

type ConfigUpdate struct {
	Name        *string
	Algorithm   *string
	Weights     *scoringModel.FactorWeights
	Constraints datatypes.JSON
}

func (s *Service) UpdateConfig(id uuid.UUID, in ConfigUpdate) (*scoringModel.ScoringConfigModel, error) {
	cfg, err := s.GetConfig(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["scoring_config_name"] = *in.Name
	}
	if in.Algorithm != nil {
		updates["scoring_config_algorithm"] = *in.Algorithm
	}
	if in.Weights != nil {
		tmp := scoringModel.ScoringConfigModel{}
		if err := tmp.SetWeights(*in.Weights); err != nil {
			return nil, err
		}
		updates["scoring_config_weights"] = tmp.ScoringConfigWeights
	}
	if in.Constraints != nil {
		updates["scoring_config_constraints"] = in.Constraints
	}
	if len(updates) == 0 {
		return cfg, nil
	}
	if err := s.DB.Model(cfg).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update config: %w", err)
	}
	return s.GetConfig(id)
}

func (s *Service) DeleteConfig(id uuid.UUID) error {
	res := s.DB.Where("scoring_config_id = ?", id).Delete(&scoringModel.ScoringConfigModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConfigNotFound
	}
	return nil
}

// ActivateConfig makes id the single active config. The deactivate-all +
// activate-one pair runs in one transaction so the "at most one active"
// invariant holds outside of it.
func (s *Service) ActivateConfig(id uuid.UUID) (*scoringModel.ScoringConfigModel, error) {
	if _, err := s.GetConfig(id); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&scoringModel.ScoringConfigModel{}).
			Where("scoring_config_is_active = ?", true).
			Update("scoring_config_is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate configs: %w", err)
		}
		if err := tx.Model(&scoringModel.ScoringConfigModel{}).
			Where("scoring_config_id = ?", id).
			Update("scoring_config_is_active", true).Error; err != nil {
			return fmt.Errorf("activate config: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetConfig(id)
}
