package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamModel struct {
	TeamID          uuid.UUID `gorm:"column:team_id;type:uuid;primaryKey" json:"team_id"`
	TeamName        string    `gorm:"column:team_name;type:varchar(120);not null" json:"team_name"`
	TeamDescription *string   `gorm:"column:team_description" json:"team_description,omitempty"`
	TeamCreatedBy   uuid.UUID `gorm:"column:team_created_by;type:uuid;not null" json:"team_created_by"`

	TeamCreatedAt time.Time      `gorm:"column:team_created_at;not null;autoCreateTime" json:"team_created_at"`
	TeamUpdatedAt time.Time      `gorm:"column:team_updated_at;not null;autoUpdateTime" json:"team_updated_at"`
	TeamDeletedAt gorm.DeletedAt `gorm:"column:team_deleted_at;index" json:"team_deleted_at,omitempty"`

	Members []TeamMemberModel `gorm:"foreignKey:TeamMemberTeamID;references:TeamID" json:"members,omitempty"`
}

func (TeamModel) TableName() string { return "teams" }

func (m *TeamModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeamID == uuid.Nil {
		m.TeamID = uuid.New()
	}
	return nil
}

type TeamMemberModel struct {
	TeamMemberID     uuid.UUID `gorm:"column:team_member_id;type:uuid;primaryKey" json:"team_member_id"`
	TeamMemberTeamID uuid.UUID `gorm:"column:team_member_team_id;type:uuid;not null;uniqueIndex:uq_team_member" json:"team_member_team_id"`
	TeamMemberUserID uuid.UUID `gorm:"column:team_member_user_id;type:uuid;not null;uniqueIndex:uq_team_member" json:"team_member_user_id"`
	TeamMemberRole   *string   `gorm:"column:team_member_role;type:varchar(60)" json:"team_member_role,omitempty"`

	TeamMemberCreatedAt time.Time `gorm:"column:team_member_created_at;not null;autoCreateTime" json:"team_member_created_at"`
}

func (TeamMemberModel) TableName() string { return "team_members" }

func (m *TeamMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeamMemberID == uuid.Nil {
		m.TeamMemberID = uuid.New()
	}
	return nil
}
