package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment lifecycle.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
)

// How the assignment came to be.
const (
	AssignmentTypeDirect    = "DIRECT"
	AssignmentTypeScored    = "SCORED"
	AssignmentTypeSuggested = "SUGGESTED"
)

// AllowedTransitions is the fixed status machine. CANCELLED is terminal;
// COMPLETED only admits cancellation; FAILED may be retried.
var AllowedTransitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted:  {StatusCancelled},
	StatusFailed:     {StatusInProgress, StatusCancelled},
	StatusCancelled:  {},
}

// CanTransition reports whether target is reachable from current.
func CanTransition(current, target string) bool {
	for _, s := range AllowedTransitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	_, ok := AllowedTransitions[s]
	return ok
}

type AssignmentModel struct {
	AssignmentID          uuid.UUID `gorm:"column:assignment_id;type:uuid;primaryKey" json:"assignment_id"`
	AssignmentJobID       uuid.UUID `gorm:"column:assignment_job_id;type:uuid;not null;index:idx_assignment_job" json:"assignment_job_id"`
	AssignmentDeveloperID uuid.UUID `gorm:"column:assignment_developer_id;type:uuid;not null;index:idx_assignment_developer" json:"assignment_developer_id"`
	AssignmentAssignedBy  uuid.UUID `gorm:"column:assignment_assigned_by;type:uuid;not null" json:"assignment_assigned_by"`
	AssignmentStatus      string    `gorm:"column:assignment_status;type:varchar(20);not null;default:PENDING;index" json:"assignment_status"`
	AssignmentType        string    `gorm:"column:assignment_type;type:varchar(20);not null;default:DIRECT" json:"assignment_type"`
	AssignmentNotes       *string   `gorm:"column:assignment_notes" json:"assignment_notes,omitempty"`

	// 0..5, set by the client after completion; feeds the performance cache.
	AssignmentQualityRating *float64 `gorm:"column:assignment_quality_rating" json:"assignment_quality_rating,omitempty"`

	AssignmentStartedAt   *time.Time `gorm:"column:assignment_started_at" json:"assignment_started_at,omitempty"`
	AssignmentCompletedAt *time.Time `gorm:"column:assignment_completed_at" json:"assignment_completed_at,omitempty"`

	AssignmentCreatedAt time.Time      `gorm:"column:assignment_created_at;not null;autoCreateTime" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time      `gorm:"column:assignment_updated_at;not null;autoUpdateTime" json:"assignment_updated_at"`
	AssignmentDeletedAt gorm.DeletedAt `gorm:"column:assignment_deleted_at;index" json:"assignment_deleted_at,omitempty"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentID == uuid.Nil {
		m.AssignmentID = uuid.New()
	}
	return nil
}

type TeamAssignmentModel struct {
	TeamAssignmentID         uuid.UUID `gorm:"column:team_assignment_id;type:uuid;primaryKey" json:"team_assignment_id"`
	TeamAssignmentJobID      uuid.UUID `gorm:"column:team_assignment_job_id;type:uuid;not null;index" json:"team_assignment_job_id"`
	TeamAssignmentTeamID     uuid.UUID `gorm:"column:team_assignment_team_id;type:uuid;not null;index" json:"team_assignment_team_id"`
	TeamAssignmentAssignedBy uuid.UUID `gorm:"column:team_assignment_assigned_by;type:uuid;not null" json:"team_assignment_assigned_by"`
	TeamAssignmentStatus     string    `gorm:"column:team_assignment_status;type:varchar(20);not null;default:PENDING;index" json:"team_assignment_status"`
	TeamAssignmentNotes      *string   `gorm:"column:team_assignment_notes" json:"team_assignment_notes,omitempty"`

	TeamAssignmentCreatedAt time.Time      `gorm:"column:team_assignment_created_at;not null;autoCreateTime" json:"team_assignment_created_at"`
	TeamAssignmentUpdatedAt time.Time      `gorm:"column:team_assignment_updated_at;not null;autoUpdateTime" json:"team_assignment_updated_at"`
	TeamAssignmentDeletedAt gorm.DeletedAt `gorm:"column:team_assignment_deleted_at;index" json:"team_assignment_deleted_at,omitempty"`
}

func (TeamAssignmentModel) TableName() string { return "team_assignments" }

func (m *TeamAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeamAssignmentID == uuid.Nil {
		m.TeamAssignmentID = uuid.New()
	}
	return nil
}
