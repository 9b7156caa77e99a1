package model

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job lifecycle.
const (
	JobStatusDraft      = "DRAFT"
	JobStatusApproved   = "APPROVED"
	JobStatusInProgress = "IN_PROGRESS"
	JobStatusCompleted  = "COMPLETED"
	JobStatusCancelled  = "CANCELLED"
)

// Job priority tiers, used by the scorer's priority weight table.
const (
	JobPriorityLow      = "LOW"
	JobPriorityMedium   = "MEDIUM"
	JobPriorityHigh     = "HIGH"
	JobPriorityCritical = "CRITICAL"
)

// PriorityWeight maps a priority tier to its scoring weight (LOW=1 ... CRITICAL=5).
func PriorityWeight(priority string) float64 {
	switch priority {
	case JobPriorityLow:
		return 1
	case JobPriorityMedium:
		return 2
	case JobPriorityHigh:
		return 3
	case JobPriorityCritical:
		return 5
	default:
		return 2
	}
}

// RequiredSkill is one element of the job's structured skill list.
type RequiredSkill struct {
	Skill    string  `json:"skill"`
	Level    string  `json:"level"`
	Weight   float64 `json:"weight"`
	Required bool    `json:"required"`
}

type JobModel struct {
	JobID          uuid.UUID `gorm:"column:job_id;type:uuid;primaryKey" json:"job_id"`
	JobClientID    uuid.UUID `gorm:"column:job_client_id;type:uuid;not null;index" json:"job_client_id"`
	JobTitle       string    `gorm:"column:job_title;type:varchar(180);not null" json:"job_title"`
	JobDescription *string   `gorm:"column:job_description" json:"job_description,omitempty"`
	JobStatus      string    `gorm:"column:job_status;type:varchar(20);not null;default:DRAFT;index" json:"job_status"`
	JobPriority    string    `gorm:"column:job_priority;type:varchar(20);not null;default:MEDIUM" json:"job_priority"`

	JobEstimatedHours *float64       `gorm:"column:job_estimated_hours" json:"job_estimated_hours,omitempty"`
	JobTags           datatypes.JSON `gorm:"column:job_tags" json:"job_tags,omitempty"`
	JobRequiredSkills datatypes.JSON `gorm:"column:job_required_skills" json:"job_required_skills,omitempty"`

	JobCreatedAt time.Time      `gorm:"column:job_created_at;not null;autoCreateTime" json:"job_created_at"`
	JobUpdatedAt time.Time      `gorm:"column:job_updated_at;not null;autoUpdateTime" json:"job_updated_at"`
	JobDeletedAt gorm.DeletedAt `gorm:"column:job_deleted_at;index" json:"job_deleted_at,omitempty"`
}

func (JobModel) TableName() string { return "jobs" }

func (m *JobModel) BeforeCreate(tx *gorm.DB) error {
	if m.JobID == uuid.Nil {
		m.JobID = uuid.New()
	}
	return nil
}

// RequiredSkills decodes the structured skill list; nil when absent/invalid.
func (m *JobModel) RequiredSkills() []RequiredSkill {
	if len(m.JobRequiredSkills) == 0 {
		return nil
	}
	var out []RequiredSkill
	if err := sonic.Unmarshal(m.JobRequiredSkills, &out); err != nil {
		return nil
	}
	return out
}

// Tags decodes the free-text tag list; nil when absent/invalid.
func (m *JobModel) Tags() []string {
	if len(m.JobTags) == 0 {
		return nil
	}
	var out []string
	if err := sonic.Unmarshal(m.JobTags, &out); err != nil {
		return nil
	}
	return out
}
