package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StatusHistoryModel is append-only: rows are written once per transition
// (or on creation, with a nil previous status) and never updated or deleted.
type StatusHistoryModel struct {
	StatusHistoryID               uuid.UUID  `gorm:"column:status_history_id;type:uuid;primaryKey" json:"status_history_id"`
	StatusHistoryAssignmentID     *uuid.UUID `gorm:"column:status_history_assignment_id;type:uuid;index" json:"status_history_assignment_id,omitempty"`
	StatusHistoryTeamAssignmentID *uuid.UUID `gorm:"column:status_history_team_assignment_id;type:uuid;index" json:"status_history_team_assignment_id,omitempty"`

	StatusHistoryPreviousStatus *string `gorm:"column:status_history_previous_status;type:varchar(20)" json:"status_history_previous_status,omitempty"`
	StatusHistoryNewStatus      string  `gorm:"column:status_history_new_status;type:varchar(20);not null;index" json:"status_history_new_status"`

	StatusHistoryChangedBy uuid.UUID      `gorm:"column:status_history_changed_by;type:uuid;not null;index" json:"status_history_changed_by"`
	StatusHistoryReason    *string        `gorm:"column:status_history_reason" json:"status_history_reason,omitempty"`
	StatusHistoryNotes     *string        `gorm:"column:status_history_notes" json:"status_history_notes,omitempty"`
	StatusHistoryIPAddress *string        `gorm:"column:status_history_ip_address;type:varchar(64)" json:"status_history_ip_address,omitempty"`
	StatusHistoryUserAgent *string        `gorm:"column:status_history_user_agent;type:varchar(255)" json:"status_history_user_agent,omitempty"`
	StatusHistoryMetadata  datatypes.JSON `gorm:"column:status_history_metadata" json:"status_history_metadata,omitempty"`

	StatusHistoryChangedAt time.Time `gorm:"column:status_history_changed_at;not null;autoCreateTime" json:"status_history_changed_at"`
}

func (StatusHistoryModel) TableName() string { return "status_history_records" }

func (m *StatusHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.StatusHistoryID == uuid.Nil {
		m.StatusHistoryID = uuid.New()
	}
	return nil
}
