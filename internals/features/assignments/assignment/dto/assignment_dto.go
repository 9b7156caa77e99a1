package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateAssignmentRequest struct {
	AssignmentJobID       uuid.UUID `json:"assignment_job_id" validate:"required"`
	AssignmentDeveloperID uuid.UUID `json:"assignment_developer_id" validate:"required"`
	AssignmentType        *string   `json:"assignment_type" validate:"omitempty,oneof=DIRECT SCORED SUGGESTED"`
	AssignmentNotes       *string   `json:"assignment_notes" validate:"omitempty,max=4000"`
}

type AssignTopRankedRequest struct {
	AssignmentJobID uuid.UUID `json:"assignment_job_id" validate:"required"`
	AssignmentNotes *string   `json:"assignment_notes" validate:"omitempty,max=4000"`
}

type UpdateAssignmentRequest struct {
	AssignmentNotes *string `json:"assignment_notes" validate:"omitempty,max=4000"`
	AssignmentType  *string `json:"assignment_type" validate:"omitempty,oneof=DIRECT SCORED SUGGESTED"`
}

// UpdateStatusRequest drives the transition engine. Reason and notes land in
// the history record, not on the assignment row.
type UpdateStatusRequest struct {
	Status   string         `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED FAILED CANCELLED"`
	Reason   *string        `json:"reason" validate:"omitempty,max=500"`
	Notes    *string        `json:"notes" validate:"omitempty,max=4000"`
	Metadata datatypes.JSON `json:"metadata"`
}

type CreateTeamAssignmentRequest struct {
	TeamAssignmentJobID  uuid.UUID `json:"team_assignment_job_id" validate:"required"`
	TeamAssignmentTeamID uuid.UUID `json:"team_assignment_team_id" validate:"required"`
	TeamAssignmentNotes  *string   `json:"team_assignment_notes" validate:"omitempty,max=4000"`
}

type CreateAndAssignRequest struct {
	TeamAssignmentJobID uuid.UUID   `json:"team_assignment_job_id" validate:"required"`
	TeamName            string      `json:"team_name" validate:"required,min=2,max=120"`
	MemberIDs           []uuid.UUID `json:"member_ids" validate:"required,min=1,max=20"`
	TeamAssignmentNotes *string     `json:"team_assignment_notes" validate:"omitempty,max=4000"`
}
