package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "talenthub_backend/internals/features/users/user/model"
)

type UpdateProfileRequest struct {
	UserName     *string `json:"user_name" validate:"omitempty,min=2,max=120"`
	UserHeadline *string `json:"user_headline" validate:"omitempty,max=180"`
	UserBio      *string `json:"user_bio" validate:"omitempty,max=4000"`
}

type CreateSkillRequest struct {
	DeveloperSkillName  string   `json:"developer_skill_name" validate:"required,max=120"`
	DeveloperSkillLevel string   `json:"developer_skill_level" validate:"required,oneof=BEGINNER INTERMEDIATE EXPERT"`
	DeveloperSkillYears *float64 `json:"developer_skill_years" validate:"omitempty,gte=0,lte=60"`
}

func (r *CreateSkillRequest) ToModel(userID uuid.UUID) *userModel.DeveloperSkillModel {
	return &userModel.DeveloperSkillModel{
		DeveloperSkillUserID: userID,
		DeveloperSkillName:   r.DeveloperSkillName,
		DeveloperSkillLevel:  r.DeveloperSkillLevel,
		DeveloperSkillYears:  r.DeveloperSkillYears,
	}
}

type UpdateSkillRequest struct {
	DeveloperSkillName  *string  `json:"developer_skill_name" validate:"omitempty,max=120"`
	DeveloperSkillLevel *string  `json:"developer_skill_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE EXPERT"`
	DeveloperSkillYears *float64 `json:"developer_skill_years" validate:"omitempty,gte=0,lte=60"`
}

type UpsertAvailabilityRequest struct {
	DeveloperAvailabilityMaxHours       float64    `json:"developer_availability_max_hours" validate:"required,gt=0,lte=100"`
	DeveloperAvailabilityCommittedHours float64    `json:"developer_availability_committed_hours" validate:"gte=0,lte=100"`
	DeveloperAvailabilityAvailableFrom  *time.Time `json:"developer_availability_available_from"`
	DeveloperAvailabilityOpenToWork     *bool      `json:"developer_availability_open_to_work"`
}

type CreateEducationRequest struct {
	EducationEntryInstitution string  `json:"education_entry_institution" validate:"required,max=180"`
	EducationEntryDegree      *string `json:"education_entry_degree" validate:"omitempty,max=120"`
	EducationEntryField       *string `json:"education_entry_field" validate:"omitempty,max=120"`
	EducationEntryStartYear   *int    `json:"education_entry_start_year" validate:"omitempty,gte=1950,lte=2100"`
	EducationEntryEndYear     *int    `json:"education_entry_end_year" validate:"omitempty,gte=1950,lte=2100"`
}

type UpdateEducationRequest struct {
	EducationEntryInstitution *string `json:"education_entry_institution" validate:"omitempty,max=180"`
	EducationEntryDegree      *string `json:"education_entry_degree" validate:"omitempty,max=120"`
	EducationEntryField       *string `json:"education_entry_field" validate:"omitempty,max=120"`
	EducationEntryStartYear   *int    `json:"education_entry_start_year" validate:"omitempty,gte=1950,lte=2100"`
	EducationEntryEndYear     *int    `json:"education_entry_end_year" validate:"omitempty,gte=1950,lte=2100"`
}

type CreatePortfolioRequest struct {
	PortfolioItemTitle   string         `json:"portfolio_item_title" validate:"required,max=180"`
	PortfolioItemURL     *string        `json:"portfolio_item_url" validate:"omitempty,url,max=500"`
	PortfolioItemSummary *string        `json:"portfolio_item_summary" validate:"omitempty,max=4000"`
	PortfolioItemTags    datatypes.JSON `json:"portfolio_item_tags"`
}

type UpdatePortfolioRequest struct {
	PortfolioItemTitle   *string        `json:"portfolio_item_title" validate:"omitempty,max=180"`
	PortfolioItemURL     *string        `json:"portfolio_item_url" validate:"omitempty,url,max=500"`
	PortfolioItemSummary *string        `json:"portfolio_item_summary" validate:"omitempty,max=4000"`
	PortfolioItemTags    datatypes.JSON `json:"portfolio_item_tags"`
}

// ProfileResponse bundles a user with the profile sub-resources.
type ProfileResponse struct {
	User         *userModel.UserModel                  `json:"user"`
	Skills       []userModel.DeveloperSkillModel       `json:"skills"`
	Availability *userModel.DeveloperAvailabilityModel `json:"availability,omitempty"`
	Education    []userModel.EducationEntryModel       `json:"education"`
	Portfolio    []userModel.PortfolioItemModel        `json:"portfolio"`
}
