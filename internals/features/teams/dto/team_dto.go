package dto

import (
	"strings"

	"github.com/google/uuid"

	teamModel "talenthub_backend/internals/features/teams/model"
)

type CreateTeamRequest struct {
	TeamName        string      `json:"team_name" validate:"required,min=2,max=120"`
	TeamDescription *string     `json:"team_description" validate:"omitempty,max=4000"`
	MemberIDs       []uuid.UUID `json:"member_ids" validate:"omitempty,max=20"`
}

func (r *CreateTeamRequest) ToModel(createdBy uuid.UUID) *teamModel.TeamModel {
	return &teamModel.TeamModel{
		TeamName:        strings.TrimSpace(r.TeamName),
		TeamDescription: r.TeamDescription,
		TeamCreatedBy:   createdBy,
	}
}

type UpdateTeamRequest struct {
	TeamName        *string `json:"team_name" validate:"omitempty,min=2,max=120"`
	TeamDescription *string `json:"team_description" validate:"omitempty,max=4000"`
}

type AddMemberRequest struct {
	TeamMemberUserID uuid.UUID `json:"team_member_user_id" validate:"required"`
	TeamMemberRole   *string   `json:"team_member_role" validate:"omitempty,max=60"`
}
