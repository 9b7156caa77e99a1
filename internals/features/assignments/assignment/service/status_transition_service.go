package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	historyService "talenthub_backend/internals/features/assignments/status_history/service"
	jobModel "talenthub_backend/internals/features/jobs/model"
	scoringService "talenthub_backend/internals/features/scoring/service"
	teamModel "talenthub_backend/internals/features/teams/model"
)

// AuditOptions carries the request context recorded with a transition.
type AuditOptions struct {
	Reason    *string
	Notes     *string
	IPAddress *string
	UserAgent *string
	Metadata  datatypes.JSON
}

// Transition validates and executes a status change for one assignment.
//
// Order matters: ownership gate, then state-machine check, then the
// side-effect trigger and status write inside one transaction (a trigger
// failure aborts the whole transition), then the best-effort audit record.
func (s *Service) Transition(assignmentID uuid.UUID, newStatus string, actor Actor, audit AuditOptions) (*assignmentModel.AssignmentModel, error) {
	if !assignmentModel.ValidStatus(newStatus) {
		return nil, ErrUnknownStatus
	}

	row, err := s.Get(assignmentID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && actor.ID != row.AssignmentDeveloperID {
		return nil, ErrForbidden
	}

	prev := row.AssignmentStatus
	if !assignmentModel.CanTransition(prev, newStatus) {
		return nil, &InvalidTransitionError{
			From:    prev,
			To:      newStatus,
			Allowed: assignmentModel.AllowedTransitions[prev],
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"assignment_status": newStatus}
		now := time.Now()
		switch newStatus {
		case assignmentModel.StatusInProgress:
			if row.AssignmentStartedAt == nil {
				updates["assignment_started_at"] = now
			}
		case assignmentModel.StatusCompleted:
			updates["assignment_completed_at"] = now
		}
		if err := tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_id = ?", row.AssignmentID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("persist status: %w", err)
		}

		if err := s.runSideEffect(tx, row.AssignmentJobID, newStatus); err != nil {
			return fmt.Errorf("side effect for %s: %w", newStatus, err)
		}

		// Best effort inside the same tx: a history failure is logged by
		// the recorder, not surfaced, so the status write still commits.
		if actor.ID == uuid.Nil {
			log.Printf("[WARN] transition %s -> %s on %s without actor, history skipped", prev, newStatus, row.AssignmentID)
		}
		s.History.Record(tx, historyService.RecordOptions{
			AssignmentID:   &row.AssignmentID,
			PreviousStatus: &prev,
			NewStatus:      newStatus,
			ChangedBy:      actor.ID,
			Reason:         audit.Reason,
			Notes:          audit.Notes,
			IPAddress:      audit.IPAddress,
			UserAgent:      audit.UserAgent,
			Metadata:       audit.Metadata,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Terminal statuses change the developer's track record; refresh the
	// derived metric row. Best effort.
	switch newStatus {
	case assignmentModel.StatusCompleted, assignmentModel.StatusFailed, assignmentModel.StatusCancelled:
		if _, err := scoringService.New(s.DB).RecomputePerformance(row.AssignmentDeveloperID); err != nil {
			log.Printf("[WARN] performance recompute for %s: %v", row.AssignmentDeveloperID, err)
		}
	}

	return s.Get(assignmentID)
}

// runSideEffect applies the job-level consequence of entering newStatus.
// Runs inside the transition transaction; an error here rolls everything
// back.
func (s *Service) runSideEffect(tx *gorm.DB, jobID uuid.UUID, newStatus string) error {
	switch newStatus {
	case assignmentModel.StatusPending:
		// Placeholder for notification dispatch.
		log.Printf("[INFO] assignment on job %s back to PENDING", jobID)
		return nil

	case assignmentModel.StatusInProgress:
		return tx.Model(&jobModel.JobModel{}).
			Where("job_id = ?", jobID).
			Update("job_status", jobModel.JobStatusInProgress).Error

	case assignmentModel.StatusCompleted:
		// Job completes only when every sibling assignment has completed.
		var open int64
		if err := tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_job_id = ? AND assignment_status <> ?", jobID, assignmentModel.StatusCompleted).
			Count(&open).Error; err != nil {
			return err
		}
		if open == 0 {
			return tx.Model(&jobModel.JobModel{}).
				Where("job_id = ?", jobID).
				Update("job_status", jobModel.JobStatusCompleted).Error
		}
		return nil

	case assignmentModel.StatusFailed:
		// Placeholder for reassignment/notification.
		log.Printf("[INFO] assignment on job %s FAILED", jobID)
		return nil

	case assignmentModel.StatusCancelled:
		// If nothing is still pending or running, the job becomes
		// available again.
		var live int64
		if err := tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_job_id = ? AND assignment_status IN ?", jobID,
				[]string{assignmentModel.StatusPending, assignmentModel.StatusInProgress}).
			Count(&live).Error; err != nil {
			return err
		}
		if live == 0 {
			return tx.Model(&jobModel.JobModel{}).
				Where("job_id = ?", jobID).
				Update("job_status", jobModel.JobStatusApproved).Error
		}
		return nil

	default:
		return ErrUnknownStatus
	}
}

// TransitionTeam is the team-assignment variant. Ownership gate: a
// non-admin actor must be a member of the assigned team. Sibling logic runs
// over the job's team assignments.
func (s *Service) TransitionTeam(teamAssignmentID uuid.UUID, newStatus string, actor Actor, audit AuditOptions) (*assignmentModel.TeamAssignmentModel, error) {
	if !assignmentModel.ValidStatus(newStatus) {
		return nil, ErrUnknownStatus
	}

	var row assignmentModel.TeamAssignmentModel
	if err := s.DB.Where("team_assignment_id = ?", teamAssignmentID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamAssignmentNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin() {
		var member int64
		if err := s.DB.Model(&teamModel.TeamMemberModel{}).
			Where("team_member_team_id = ? AND team_member_user_id = ?", row.TeamAssignmentTeamID, actor.ID).
			Count(&member).Error; err != nil {
			return nil, err
		}
		if member == 0 {
			return nil, ErrForbidden
		}
	}

	prev := row.TeamAssignmentStatus
	if !assignmentModel.CanTransition(prev, newStatus) {
		return nil, &InvalidTransitionError{
			From:    prev,
			To:      newStatus,
			Allowed: assignmentModel.AllowedTransitions[prev],
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&assignmentModel.TeamAssignmentModel{}).
			Where("team_assignment_id = ?", row.TeamAssignmentID).
			Update("team_assignment_status", newStatus).Error; err != nil {
			return fmt.Errorf("persist status: %w", err)
		}

		if err := s.runTeamSideEffect(tx, row.TeamAssignmentJobID, newStatus); err != nil {
			return fmt.Errorf("side effect for %s: %w", newStatus, err)
		}

		s.History.Record(tx, historyService.RecordOptions{
			TeamAssignmentID: &row.TeamAssignmentID,
			PreviousStatus:   &prev,
			NewStatus:        newStatus,
			ChangedBy:        actor.ID,
			Reason:           audit.Reason,
			Notes:            audit.Notes,
			IPAddress:        audit.IPAddress,
			UserAgent:        audit.UserAgent,
			Metadata:         audit.Metadata,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out assignmentModel.TeamAssignmentModel
	if err := s.DB.Where("team_assignment_id = ?", teamAssignmentID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) runTeamSideEffect(tx *gorm.DB, jobID uuid.UUID, newStatus string) error {
	switch newStatus {
	case assignmentModel.StatusPending, assignmentModel.StatusFailed:
		log.Printf("[INFO] team assignment on job %s -> %s", jobID, newStatus)
		return nil

	case assignmentModel.StatusInProgress:
		return tx.Model(&jobModel.JobModel{}).
			Where("job_id = ?", jobID).
			Update("job_status", jobModel.JobStatusInProgress).Error

	case assignmentModel.StatusCompleted:
		var open int64
		if err := tx.Model(&assignmentModel.TeamAssignmentModel{}).
			Where("team_assignment_job_id = ? AND team_assignment_status <> ?", jobID, assignmentModel.StatusCompleted).
			Count(&open).Error; err != nil {
			return err
		}
		if open == 0 {
			return tx.Model(&jobModel.JobModel{}).
				Where("job_id = ?", jobID).
				Update("job_status", jobModel.JobStatusCompleted).Error
		}
		return nil

	case assignmentModel.StatusCancelled:
		var live int64
		if err := tx.Model(&assignmentModel.TeamAssignmentModel{}).
			Where("team_assignment_job_id = ? AND team_assignment_status IN ?", jobID,
				[]string{assignmentModel.StatusPending, assignmentModel.StatusInProgress}).
			Count(&live).Error; err != nil {
			return err
		}
		if live == 0 {
			return tx.Model(&jobModel.JobModel{}).
				Where("job_id = ?", jobID).
				Update("job_status", jobModel.JobStatusApproved).Error
		}
		return nil

	default:
		return ErrUnknownStatus
	}
}
