package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	scoringModel "talenthub_backend/internals/features/scoring/model"
)

type ScoreJobRequest struct {
	JobID                uuid.UUID `json:"job_id" validate:"required"`
	Limit                int       `json:"limit" validate:"omitempty,gte=1,lte=50"`
	MinScore             *float64  `json:"min_score" validate:"omitempty,gte=0,lte=1"`
	IncludeInactiveUsers bool      `json:"include_inactive_users"`
}

type FactorWeightsInput struct {
	SkillMatch    float64 `json:"skill_match" validate:"gte=0,lte=1"`
	Performance   float64 `json:"performance" validate:"gte=0,lte=1"`
	Availability  float64 `json:"availability" validate:"gte=0,lte=1"`
	Workload      float64 `json:"workload" validate:"gte=0,lte=1"`
	PriorityBonus float64 `json:"priority_bonus" validate:"gte=0,lte=1"`
}

func (w FactorWeightsInput) ToWeights() scoringModel.FactorWeights {
	return scoringModel.FactorWeights{
		SkillMatch:    w.SkillMatch,
		Performance:   w.Performance,
		Availability:  w.Availability,
		Workload:      w.Workload,
		PriorityBonus: w.PriorityBonus,
	}
}

type CreateConfigRequest struct {
	ScoringConfigName        string             `json:"scoring_config_name" validate:"required,min=2,max=120"`
	ScoringConfigAlgorithm   *string            `json:"scoring_config_algorithm" validate:"omitempty,max=60"`
	Weights                  FactorWeightsInput `json:"weights" validate:"required"`
	ScoringConfigConstraints datatypes.JSON     `json:"scoring_config_constraints"`
}

type UpdateConfigRequest struct {
	ScoringConfigName        *string             `json:"scoring_config_name" validate:"omitempty,min=2,max=120"`
	ScoringConfigAlgorithm   *string             `json:"scoring_config_algorithm" validate:"omitempty,max=60"`
	Weights                  *FactorWeightsInput `json:"weights" validate:"omitempty"`
	ScoringConfigConstraints datatypes.JSON      `json:"scoring_config_constraints"`
}
