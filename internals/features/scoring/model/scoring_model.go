package model

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FactorWeights is the closed weighting profile over the five scoring
// factors. Stored as JSON; all five fields are always present so a missing
// factor is a compile error rather than a silent map miss.
type FactorWeights struct {
	SkillMatch    float64 `json:"skill_match"`
	Performance   float64 `json:"performance"`
	Availability  float64 `json:"availability"`
	Workload      float64 `json:"workload"`
	PriorityBonus float64 `json:"priority_bonus"`
}

// DefaultWeights is the hardcoded fallback used when no config is active.
func DefaultWeights() FactorWeights {
	return FactorWeights{
		SkillMatch:    0.35,
		Performance:   0.25,
		Availability:  0.20,
		Workload:      0.10,
		PriorityBonus: 0.10,
	}
}

// FactorBreakdown holds the per-factor values behind one composite score.
type FactorBreakdown struct {
	SkillMatch    float64 `json:"skill_match"`
	Performance   float64 `json:"performance"`
	Availability  float64 `json:"availability"`
	Workload      float64 `json:"workload"`
	PriorityBonus float64 `json:"priority_bonus"`
}

const DefaultAlgorithm = "weighted_v1"

type ScoringConfigModel struct {
	ScoringConfigID          uuid.UUID      `gorm:"column:scoring_config_id;type:uuid;primaryKey" json:"scoring_config_id"`
	ScoringConfigName        string         `gorm:"column:scoring_config_name;type:varchar(120);not null" json:"scoring_config_name"`
	ScoringConfigAlgorithm   string         `gorm:"column:scoring_config_algorithm;type:varchar(60);not null;default:weighted_v1" json:"scoring_config_algorithm"`
	ScoringConfigWeights     datatypes.JSON `gorm:"column:scoring_config_weights;not null" json:"scoring_config_weights"`
	ScoringConfigConstraints datatypes.JSON `gorm:"column:scoring_config_constraints" json:"scoring_config_constraints,omitempty"`
	ScoringConfigIsActive    bool           `gorm:"column:scoring_config_is_active;not null;default:false;index" json:"scoring_config_is_active"`

	ScoringConfigCreatedAt time.Time      `gorm:"column:scoring_config_created_at;not null;autoCreateTime" json:"scoring_config_created_at"`
	ScoringConfigUpdatedAt time.Time      `gorm:"column:scoring_config_updated_at;not null;autoUpdateTime" json:"scoring_config_updated_at"`
	ScoringConfigDeletedAt gorm.DeletedAt `gorm:"column:scoring_config_deleted_at;index" json:"scoring_config_deleted_at,omitempty"`
}

func (ScoringConfigModel) TableName() string { return "scoring_configs" }

func (m *ScoringConfigModel) BeforeCreate(tx *gorm.DB) error {
	if m.ScoringConfigID == uuid.Nil {
		m.ScoringConfigID = uuid.New()
	}
	return nil
}

// Weights decodes the stored profile, falling back to the defaults when the
// column is empty or unreadable.
func (m *ScoringConfigModel) Weights() FactorWeights {
	if len(m.ScoringConfigWeights) == 0 {
		return DefaultWeights()
	}
	var w FactorWeights
	if err := sonic.Unmarshal(m.ScoringConfigWeights, &w); err != nil {
		return DefaultWeights()
	}
	return w
}

func (m *ScoringConfigModel) SetWeights(w FactorWeights) error {
	raw, err := sonic.Marshal(w)
	if err != nil {
		return err
	}
	m.ScoringConfigWeights = raw
	return nil
}

// One row per scorer invocation. Immutable.
type ScoringRunModel struct {
	ScoringRunID          uuid.UUID `gorm:"column:scoring_run_id;type:uuid;primaryKey" json:"scoring_run_id"`
	ScoringRunJobID       uuid.UUID `gorm:"column:scoring_run_job_id;type:uuid;not null;index" json:"scoring_run_job_id"`
	ScoringRunTriggeredBy uuid.UUID `gorm:"column:scoring_run_triggered_by;type:uuid;not null" json:"scoring_run_triggered_by"`
	ScoringRunAlgorithm   string    `gorm:"column:scoring_run_algorithm;type:varchar(60);not null" json:"scoring_run_algorithm"`
	ScoringRunConfigID    uuid.UUID `gorm:"column:scoring_run_config_id;type:uuid;not null" json:"scoring_run_config_id"`

	ScoringRunCreatedAt time.Time `gorm:"column:scoring_run_created_at;not null;autoCreateTime" json:"scoring_run_created_at"`

	Scores []AssignmentScoreModel `gorm:"foreignKey:AssignmentScoreRunID;references:ScoringRunID" json:"scores,omitempty"`
}

func (ScoringRunModel) TableName() string { return "scoring_runs" }

func (m *ScoringRunModel) BeforeCreate(tx *gorm.DB) error {
	if m.ScoringRunID == uuid.Nil {
		m.ScoringRunID = uuid.New()
	}
	return nil
}

// One row per (run, developer). Immutable, bulk-inserted with explicit rank.
type AssignmentScoreModel struct {
	AssignmentScoreID          uuid.UUID      `gorm:"column:assignment_score_id;type:uuid;primaryKey" json:"assignment_score_id"`
	AssignmentScoreRunID       uuid.UUID      `gorm:"column:assignment_score_run_id;type:uuid;not null;index" json:"assignment_score_run_id"`
	AssignmentScoreJobID       uuid.UUID      `gorm:"column:assignment_score_job_id;type:uuid;not null;index" json:"assignment_score_job_id"`
	AssignmentScoreDeveloperID uuid.UUID      `gorm:"column:assignment_score_developer_id;type:uuid;not null;index" json:"assignment_score_developer_id"`
	AssignmentScoreTotal       float64        `gorm:"column:assignment_score_total;not null" json:"assignment_score_total"`
	AssignmentScoreBreakdown   datatypes.JSON `gorm:"column:assignment_score_breakdown;not null" json:"assignment_score_breakdown"`
	AssignmentScoreRank        int            `gorm:"column:assignment_score_rank;not null" json:"assignment_score_rank"`

	AssignmentScoreCreatedAt time.Time `gorm:"column:assignment_score_created_at;not null;autoCreateTime" json:"assignment_score_created_at"`
}

func (AssignmentScoreModel) TableName() string { return "assignment_scores" }

func (m *AssignmentScoreModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentScoreID == uuid.Nil {
		m.AssignmentScoreID = uuid.New()
	}
	return nil
}

func (m *AssignmentScoreModel) Breakdown() FactorBreakdown {
	var b FactorBreakdown
	if len(m.AssignmentScoreBreakdown) > 0 {
		_ = sonic.Unmarshal(m.AssignmentScoreBreakdown, &b)
	}
	return b
}

func (m *AssignmentScoreModel) SetBreakdown(b FactorBreakdown) error {
	raw, err := sonic.Marshal(b)
	if err != nil {
		return err
	}
	m.AssignmentScoreBreakdown = raw
	return nil
}

// Derived cache, recomputed on demand from assignment history. Not an
// authoritative source.
type DeveloperPerformanceMetricModel struct {
	PerformanceMetricID          uuid.UUID `gorm:"column:performance_metric_id;type:uuid;primaryKey" json:"performance_metric_id"`
	PerformanceMetricDeveloperID uuid.UUID `gorm:"column:performance_metric_developer_id;type:uuid;not null;uniqueIndex" json:"performance_metric_developer_id"`

	PerformanceMetricCompletedCount int     `gorm:"column:performance_metric_completed_count;not null;default:0" json:"performance_metric_completed_count"`
	PerformanceMetricFailedCount    int     `gorm:"column:performance_metric_failed_count;not null;default:0" json:"performance_metric_failed_count"`
	PerformanceMetricCancelledCount int     `gorm:"column:performance_metric_cancelled_count;not null;default:0" json:"performance_metric_cancelled_count"`
	PerformanceMetricOnTimeRate     float64 `gorm:"column:performance_metric_on_time_rate;not null;default:0" json:"performance_metric_on_time_rate"`
	PerformanceMetricAvgCycleHours  float64 `gorm:"column:performance_metric_avg_cycle_hours;not null;default:0" json:"performance_metric_avg_cycle_hours"`
	PerformanceMetricAvgQuality     float64 `gorm:"column:performance_metric_avg_quality;not null;default:0" json:"performance_metric_avg_quality"`

	PerformanceMetricLastUpdatedAt time.Time `gorm:"column:performance_metric_last_updated_at;not null;autoUpdateTime" json:"performance_metric_last_updated_at"`
}

func (DeveloperPerformanceMetricModel) TableName() string { return "developer_performance_metrics" }

func (m *DeveloperPerformanceMetricModel) BeforeCreate(tx *gorm.DB) error {
	if m.PerformanceMetricID == uuid.Nil {
		m.PerformanceMetricID = uuid.New()
	}
	return nil
}
