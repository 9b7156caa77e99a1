package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	jobModel "talenthub_backend/internals/features/jobs/model"
)

type RequiredSkillInput struct {
	Skill    string  `json:"skill" validate:"required,max=120"`
	Level    string  `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE EXPERT"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=1"`
	Required bool    `json:"required"`
}

type CreateJobRequest struct {
	JobTitle          string               `json:"job_title" validate:"required,min=3,max=180"`
	JobDescription    *string              `json:"job_description" validate:"omitempty,max=8000"`
	JobPriority       *string              `json:"job_priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	JobEstimatedHours *float64             `json:"job_estimated_hours" validate:"omitempty,gt=0,lte=2000"`
	JobTags           []string             `json:"job_tags" validate:"omitempty,dive,max=60"`
	JobRequiredSkills []RequiredSkillInput `json:"job_required_skills" validate:"omitempty,dive"`
}

func (r *CreateJobRequest) ToModel(clientID uuid.UUID) (*jobModel.JobModel, error) {
	priority := jobModel.JobPriorityMedium
	if r.JobPriority != nil {
		priority = *r.JobPriority
	}

	m := &jobModel.JobModel{
		JobClientID:       clientID,
		JobTitle:          strings.TrimSpace(r.JobTitle),
		JobDescription:    r.JobDescription,
		JobStatus:         jobModel.JobStatusDraft,
		JobPriority:       priority,
		JobEstimatedHours: r.JobEstimatedHours,
	}

	if len(r.JobTags) > 0 {
		raw, err := sonic.Marshal(r.JobTags)
		if err != nil {
			return nil, err
		}
		m.JobTags = datatypes.JSON(raw)
	}
	if len(r.JobRequiredSkills) > 0 {
		skills := make([]jobModel.RequiredSkill, 0, len(r.JobRequiredSkills))
		for _, s := range r.JobRequiredSkills {
			weight := s.Weight
			if weight == 0 {
				weight = 1
			}
			skills = append(skills, jobModel.RequiredSkill{
				Skill:    s.Skill,
				Level:    s.Level,
				Weight:   weight,
				Required: s.Required,
			})
		}
		raw, err := sonic.Marshal(skills)
		if err != nil {
			return nil, err
		}
		m.JobRequiredSkills = datatypes.JSON(raw)
	}
	return m, nil
}

type UpdateJobRequest struct {
	JobTitle          *string              `json:"job_title" validate:"omitempty,min=3,max=180"`
	JobDescription    *string              `json:"job_description" validate:"omitempty,max=8000"`
	JobPriority       *string              `json:"job_priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	JobStatus         *string              `json:"job_status" validate:"omitempty,oneof=DRAFT APPROVED IN_PROGRESS COMPLETED CANCELLED"`
	JobEstimatedHours *float64             `json:"job_estimated_hours" validate:"omitempty,gt=0,lte=2000"`
	JobTags           []string             `json:"job_tags" validate:"omitempty,dive,max=60"`
	JobRequiredSkills []RequiredSkillInput `json:"job_required_skills" validate:"omitempty,dive"`
}
