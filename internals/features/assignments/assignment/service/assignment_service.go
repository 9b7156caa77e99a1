package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	historyService "talenthub_backend/internals/features/assignments/status_history/service"
	jobModel "talenthub_backend/internals/features/jobs/model"
	teamModel "talenthub_backend/internals/features/teams/model"
	userModel "talenthub_backend/internals/features/users/user/model"
)

type Service struct {
	DB      *gorm.DB
	History *historyService.Service
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, History: historyService.New(db)}
}

// Actor identifies who is performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == constants.RoleAdmin }

type CreateInput struct {
	JobID       uuid.UUID
	DeveloperID uuid.UUID
	Type        string
	Notes       *string
}

// Create binds one developer to one job with a PENDING status and writes the
// initial history record (previous status nil).
func (s *Service) Create(actor Actor, in CreateInput) (*assignmentModel.AssignmentModel, error) {
	var job jobModel.JobModel
	if err := s.DB.Where("job_id = ?", in.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	var dev userModel.UserModel
	if err := s.DB.Where("user_id = ? AND user_role = ?", in.DeveloperID, constants.RoleDeveloper).
		First(&dev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeveloperNotFound
		}
		return nil, fmt.Errorf("load developer: %w", err)
	}

	// At most one PENDING/IN_PROGRESS assignment per (job, developer).
	var active int64
	if err := s.DB.Model(&assignmentModel.AssignmentModel{}).
		Where("assignment_job_id = ? AND assignment_developer_id = ? AND assignment_status IN ?",
			in.JobID, in.DeveloperID,
			[]string{assignmentModel.StatusPending, assignmentModel.StatusInProgress}).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if active > 0 {
		return nil, ErrDuplicateAssignment
	}

	aType := in.Type
	if aType == "" {
		aType = assignmentModel.AssignmentTypeDirect
	}

	row := assignmentModel.AssignmentModel{
		AssignmentJobID:       in.JobID,
		AssignmentDeveloperID: in.DeveloperID,
		AssignmentAssignedBy:  actor.ID,
		AssignmentStatus:      assignmentModel.StatusPending,
		AssignmentType:        aType,
		AssignmentNotes:       in.Notes,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	// Initial audit record: "no previous status" -> PENDING. Best effort.
	s.History.Record(nil, historyService.RecordOptions{
		AssignmentID: &row.AssignmentID,
		NewStatus:    assignmentModel.StatusPending,
		ChangedBy:    actor.ID,
	})

	return &row, nil
}

// AssignTopRanked creates a SCORED assignment for the highest-ranked
// developer of the job's most recent scoring run.
func (s *Service) AssignTopRanked(actor Actor, jobID uuid.UUID, notes *string) (*assignmentModel.AssignmentModel, error) {
	type topRow struct {
		DeveloperID uuid.UUID `gorm:"column:assignment_score_developer_id"`
	}
	var top topRow
	err := s.DB.Table("assignment_scores").
		Select("assignment_scores.assignment_score_developer_id").
		Joins("JOIN scoring_runs ON scoring_runs.scoring_run_id = assignment_scores.assignment_score_run_id").
		Where("scoring_runs.scoring_run_job_id = ?", jobID).
		Order("scoring_runs.scoring_run_created_at DESC, assignment_scores.assignment_score_rank ASC").
		Limit(1).
		Take(&top).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no scoring run for job", ErrDeveloperNotFound)
		}
		return nil, fmt.Errorf("load top score: %w", err)
	}

	return s.Create(actor, CreateInput{
		JobID:       jobID,
		DeveloperID: top.DeveloperID,
		Type:        assignmentModel.AssignmentTypeScored,
		Notes:       notes,
	})
}

func (s *Service) Get(id uuid.UUID) (*assignmentModel.AssignmentModel, error) {
	var row assignmentModel.AssignmentModel
	if err := s.DB.Where("assignment_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &row, nil
}

type ListFilter struct {
	JobID       *uuid.UUID
	DeveloperID *uuid.UUID
	Status      *string
}

func (s *Service) List(filter ListFilter, offset, limit int) ([]assignmentModel.AssignmentModel, int64, error) {
	q := s.DB.Model(&assignmentModel.AssignmentModel{})
	if filter.JobID != nil {
		q = q.Where("assignment_job_id = ?", *filter.JobID)
	}
	if filter.DeveloperID != nil {
		q = q.Where("assignment_developer_id = ?", *filter.DeveloperID)
	}
	if filter.Status != nil {
		q = q.Where("assignment_status = ?", *filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []assignmentModel.AssignmentModel
	err := q.Order("assignment_created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

// Update patches the mutable fields (notes, type). Status changes go through
// Transition only.
func (s *Service) Update(actor Actor, id uuid.UUID, notes *string, aType *string) (*assignmentModel.AssignmentModel, error) {
	row, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != row.AssignmentAssignedBy {
		return nil, ErrForbidden
	}

	updates := map[string]any{}
	if notes != nil {
		updates["assignment_notes"] = *notes
	}
	if aType != nil {
		updates["assignment_type"] = *aType
	}
	if len(updates) == 0 {
		return row, nil
	}
	if err := s.DB.Model(row).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update assignment: %w", err)
	}
	return s.Get(id)
}

// Delete soft-deletes an assignment. Admin only (enforced at the route).
func (s *Service) Delete(id uuid.UUID) error {
	res := s.DB.Where("assignment_id = ?", id).Delete(&assignmentModel.AssignmentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// ======================= TEAM ASSIGNMENTS =======================

type CreateTeamInput struct {
	JobID  uuid.UUID
	TeamID uuid.UUID
	Notes  *string
}

func (s *Service) CreateTeam(actor Actor, in CreateTeamInput) (*assignmentModel.TeamAssignmentModel, error) {
	var job jobModel.JobModel
	if err := s.DB.Where("job_id = ?", in.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	var team teamModel.TeamModel
	if err := s.DB.Where("team_id = ?", in.TeamID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("load team: %w", err)
	}

	var active int64
	if err := s.DB.Model(&assignmentModel.TeamAssignmentModel{}).
		Where("team_assignment_job_id = ? AND team_assignment_team_id = ? AND team_assignment_status IN ?",
			in.JobID, in.TeamID,
			[]string{assignmentModel.StatusPending, assignmentModel.StatusInProgress}).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if active > 0 {
		return nil, ErrDuplicateAssignment
	}

	row := assignmentModel.TeamAssignmentModel{
		TeamAssignmentJobID:      in.JobID,
		TeamAssignmentTeamID:     in.TeamID,
		TeamAssignmentAssignedBy: actor.ID,
		TeamAssignmentStatus:     assignmentModel.StatusPending,
		TeamAssignmentNotes:      in.Notes,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create team assignment: %w", err)
	}

	s.History.Record(nil, historyService.RecordOptions{
		TeamAssignmentID: &row.TeamAssignmentID,
		NewStatus:        assignmentModel.StatusPending,
		ChangedBy:        actor.ID,
	})

	return &row, nil
}

type CreateAndAssignInput struct {
	JobID     uuid.UUID
	TeamName  string
	MemberIDs []uuid.UUID
	Notes     *string
}

// CreateAndAssign builds a new team from the member list and assigns it to
// the job in one call. The team create and member rows share a transaction;
// the assignment itself reuses CreateTeam.
func (s *Service) CreateAndAssign(actor Actor, in CreateAndAssignInput) (*assignmentModel.TeamAssignmentModel, error) {
	team := teamModel.TeamModel{
		TeamName:      in.TeamName,
		TeamCreatedBy: actor.ID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return fmt.Errorf("create team: %w", err)
		}
		for _, uid := range in.MemberIDs {
			member := teamModel.TeamMemberModel{
				TeamMemberTeamID: team.TeamID,
				TeamMemberUserID: uid,
			}
			if err := tx.Create(&member).Error; err != nil {
				return fmt.Errorf("add member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.CreateTeam(actor, CreateTeamInput{
		JobID:  in.JobID,
		TeamID: team.TeamID,
		Notes:  in.Notes,
	})
}

// ======================= SUGGESTIONS =======================

// Suggestion is one skill-overlap match; the simpler sibling of the scorer.
type Suggestion struct {
	DeveloperID   uuid.UUID `json:"developer_id"`
	DeveloperName string    `json:"developer_name"`
	MatchedSkills []string  `json:"matched_skills"`
	OverlapScore  float64   `json:"overlap_score"`
}

// Suggestions lists developers by plain skill overlap with the job's
// required skill names (tags when no structured list exists). No run is
// persisted.
func (s *Service) Suggestions(jobID uuid.UUID, limit int) ([]Suggestion, error) {
	var job jobModel.JobModel
	if err := s.DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	wanted := map[string]bool{}
	for _, rs := range job.RequiredSkills() {
		wanted[strings.ToLower(rs.Skill)] = true
	}
	if len(wanted) == 0 {
		for _, tag := range job.Tags() {
			wanted[strings.ToLower(tag)] = true
		}
	}
	if len(wanted) == 0 {
		return []Suggestion{}, nil
	}

	var devs []userModel.UserModel
	if err := s.DB.Where("user_role = ? AND user_is_active = ?", constants.RoleDeveloper, true).
		Find(&devs).Error; err != nil {
		return nil, fmt.Errorf("load developers: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	out := make([]Suggestion, 0, len(devs))
	for _, dev := range devs {
		var skills []userModel.DeveloperSkillModel
		if err := s.DB.Where("developer_skill_user_id = ?", dev.UserID).Find(&skills).Error; err != nil {
			continue
		}
		var matched []string
		for _, sk := range skills {
			if wanted[strings.ToLower(sk.DeveloperSkillName)] {
				matched = append(matched, sk.DeveloperSkillName)
			}
		}
		if len(matched) == 0 {
			continue
		}
		out = append(out, Suggestion{
			DeveloperID:   dev.UserID,
			DeveloperName: dev.UserName,
			MatchedSkills: matched,
			OverlapScore:  float64(len(matched)) / float64(len(wanted)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverlapScore != out[j].OverlapScore {
			return out[i].OverlapScore > out[j].OverlapScore
		}
		return out[i].DeveloperID.String() < out[j].DeveloperID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
