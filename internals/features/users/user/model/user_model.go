package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName         string    `gorm:"column:user_name;type:varchar(120);not null" json:"user_name"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;type:varchar(255);not null" json:"-"`
	UserRole         string    `gorm:"column:user_role;type:varchar(20);not null;default:DEVELOPER" json:"user_role"`
	UserIsActive     bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`
	UserHeadline     *string   `gorm:"column:user_headline;type:varchar(180)" json:"user_headline,omitempty"`
	UserBio          *string   `gorm:"column:user_bio" json:"user_bio,omitempty"`

	UserLastActiveAt *time.Time `gorm:"column:user_last_active_at" json:"user_last_active_at,omitempty"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

// Skill proficiency levels.
const (
	SkillLevelBeginner     = "BEGINNER"
	SkillLevelIntermediate = "INTERMEDIATE"
	SkillLevelExpert       = "EXPERT"
)

type DeveloperSkillModel struct {
	DeveloperSkillID     uuid.UUID `gorm:"column:developer_skill_id;type:uuid;primaryKey" json:"developer_skill_id"`
	DeveloperSkillUserID uuid.UUID `gorm:"column:developer_skill_user_id;type:uuid;not null;index:idx_developer_skill_user" json:"developer_skill_user_id"`
	DeveloperSkillName   string    `gorm:"column:developer_skill_name;type:varchar(120);not null" json:"developer_skill_name"`
	DeveloperSkillLevel  string    `gorm:"column:developer_skill_level;type:varchar(20);not null;default:INTERMEDIATE" json:"developer_skill_level"`
	DeveloperSkillYears  *float64  `gorm:"column:developer_skill_years" json:"developer_skill_years,omitempty"`

	DeveloperSkillCreatedAt time.Time      `gorm:"column:developer_skill_created_at;not null;autoCreateTime" json:"developer_skill_created_at"`
	DeveloperSkillUpdatedAt time.Time      `gorm:"column:developer_skill_updated_at;not null;autoUpdateTime" json:"developer_skill_updated_at"`
	DeveloperSkillDeletedAt gorm.DeletedAt `gorm:"column:developer_skill_deleted_at;index" json:"developer_skill_deleted_at,omitempty"`
}

func (DeveloperSkillModel) TableName() string { return "developer_skills" }

func (m *DeveloperSkillModel) BeforeCreate(tx *gorm.DB) error {
	if m.DeveloperSkillID == uuid.Nil {
		m.DeveloperSkillID = uuid.New()
	}
	return nil
}

// One row per developer; weekly capacity in hours.
type DeveloperAvailabilityModel struct {
	DeveloperAvailabilityID             uuid.UUID  `gorm:"column:developer_availability_id;type:uuid;primaryKey" json:"developer_availability_id"`
	DeveloperAvailabilityUserID         uuid.UUID  `gorm:"column:developer_availability_user_id;type:uuid;not null;uniqueIndex" json:"developer_availability_user_id"`
	DeveloperAvailabilityMaxHours       float64    `gorm:"column:developer_availability_max_hours;not null;default:40" json:"developer_availability_max_hours"`
	DeveloperAvailabilityCommittedHours float64    `gorm:"column:developer_availability_committed_hours;not null;default:0" json:"developer_availability_committed_hours"`
	DeveloperAvailabilityAvailableFrom  *time.Time `gorm:"column:developer_availability_available_from" json:"developer_availability_available_from,omitempty"`
	DeveloperAvailabilityOpenToWork     bool       `gorm:"column:developer_availability_open_to_work;not null;default:true" json:"developer_availability_open_to_work"`

	DeveloperAvailabilityCreatedAt time.Time `gorm:"column:developer_availability_created_at;not null;autoCreateTime" json:"developer_availability_created_at"`
	DeveloperAvailabilityUpdatedAt time.Time `gorm:"column:developer_availability_updated_at;not null;autoUpdateTime" json:"developer_availability_updated_at"`
}

func (DeveloperAvailabilityModel) TableName() string { return "developer_availabilities" }

func (m *DeveloperAvailabilityModel) BeforeCreate(tx *gorm.DB) error {
	if m.DeveloperAvailabilityID == uuid.Nil {
		m.DeveloperAvailabilityID = uuid.New()
	}
	return nil
}

type EducationEntryModel struct {
	EducationEntryID          uuid.UUID `gorm:"column:education_entry_id;type:uuid;primaryKey" json:"education_entry_id"`
	EducationEntryUserID      uuid.UUID `gorm:"column:education_entry_user_id;type:uuid;not null;index" json:"education_entry_user_id"`
	EducationEntryInstitution string    `gorm:"column:education_entry_institution;type:varchar(180);not null" json:"education_entry_institution"`
	EducationEntryDegree      *string   `gorm:"column:education_entry_degree;type:varchar(120)" json:"education_entry_degree,omitempty"`
	EducationEntryField       *string   `gorm:"column:education_entry_field;type:varchar(120)" json:"education_entry_field,omitempty"`
	EducationEntryStartYear   *int      `gorm:"column:education_entry_start_year" json:"education_entry_start_year,omitempty"`
	EducationEntryEndYear     *int      `gorm:"column:education_entry_end_year" json:"education_entry_end_year,omitempty"`

	EducationEntryCreatedAt time.Time      `gorm:"column:education_entry_created_at;not null;autoCreateTime" json:"education_entry_created_at"`
	EducationEntryUpdatedAt time.Time      `gorm:"column:education_entry_updated_at;not null;autoUpdateTime" json:"education_entry_updated_at"`
	EducationEntryDeletedAt gorm.DeletedAt `gorm:"column:education_entry_deleted_at;index" json:"education_entry_deleted_at,omitempty"`
}

func (EducationEntryModel) TableName() string { return "education_entries" }

func (m *EducationEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.EducationEntryID == uuid.Nil {
		m.EducationEntryID = uuid.New()
	}
	return nil
}

type PortfolioItemModel struct {
	PortfolioItemID      uuid.UUID      `gorm:"column:portfolio_item_id;type:uuid;primaryKey" json:"portfolio_item_id"`
	PortfolioItemUserID  uuid.UUID      `gorm:"column:portfolio_item_user_id;type:uuid;not null;index" json:"portfolio_item_user_id"`
	PortfolioItemTitle   string         `gorm:"column:portfolio_item_title;type:varchar(180);not null" json:"portfolio_item_title"`
	PortfolioItemURL     *string        `gorm:"column:portfolio_item_url;type:varchar(500)" json:"portfolio_item_url,omitempty"`
	PortfolioItemSummary *string        `gorm:"column:portfolio_item_summary" json:"portfolio_item_summary,omitempty"`
	PortfolioItemTags    datatypes.JSON `gorm:"column:portfolio_item_tags" json:"portfolio_item_tags,omitempty"`

	PortfolioItemCreatedAt time.Time      `gorm:"column:portfolio_item_created_at;not null;autoCreateTime" json:"portfolio_item_created_at"`
	PortfolioItemUpdatedAt time.Time      `gorm:"column:portfolio_item_updated_at;not null;autoUpdateTime" json:"portfolio_item_updated_at"`
	PortfolioItemDeletedAt gorm.DeletedAt `gorm:"column:portfolio_item_deleted_at;index" json:"portfolio_item_deleted_at,omitempty"`
}

func (PortfolioItemModel) TableName() string { return "portfolio_items" }

func (m *PortfolioItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.PortfolioItemID == uuid.Nil {
		m.PortfolioItemID = uuid.New()
	}
	return nil
}
