package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	historyModel "talenthub_backend/internals/features/assignments/status_history/model"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// RecordOptions describes one audit entry. ChangedBy is required: when it is
// nil the record is skipped with a warning instead of failing the caller.
type RecordOptions struct {
	AssignmentID     *uuid.UUID
	TeamAssignmentID *uuid.UUID
	PreviousStatus   *string
	NewStatus        string
	ChangedBy        uuid.UUID
	Reason           *string
	Notes            *string
	IPAddress        *string
	UserAgent        *string
	Metadata         datatypes.JSON
}

// Record appends one history row. Best effort on the non-critical path:
// a write failure is logged, never propagated. tx may be nil.
func (s *Service) Record(tx *gorm.DB, opts RecordOptions) {
	db := s.DB
	if tx != nil {
		db = tx
	}

	if opts.ChangedBy == uuid.Nil {
		log.Printf("[WARN] status history skipped: no actor (new_status=%s)", opts.NewStatus)
		return
	}

	rec := historyModel.StatusHistoryModel{
		StatusHistoryAssignmentID:     opts.AssignmentID,
		StatusHistoryTeamAssignmentID: opts.TeamAssignmentID,
		StatusHistoryPreviousStatus:   opts.PreviousStatus,
		StatusHistoryNewStatus:        opts.NewStatus,
		StatusHistoryChangedBy:        opts.ChangedBy,
		StatusHistoryReason:           opts.Reason,
		StatusHistoryNotes:            opts.Notes,
		StatusHistoryIPAddress:        opts.IPAddress,
		StatusHistoryUserAgent:        opts.UserAgent,
		StatusHistoryMetadata:         opts.Metadata,
		StatusHistoryChangedAt:        time.Now(),
	}
	if err := db.Create(&rec).Error; err != nil {
		log.Printf("[ERROR] status history write failed: %v", err)
	}
}

// ListByAssignment returns the full ordered history (oldest first).
func (s *Service) ListByAssignment(assignmentID uuid.UUID) ([]historyModel.StatusHistoryModel, error) {
	var rows []historyModel.StatusHistoryModel
	err := s.DB.
		Where("status_history_assignment_id = ?", assignmentID).
		Order("status_history_changed_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListByTeamAssignment returns the full ordered history (oldest first).
func (s *Service) ListByTeamAssignment(teamAssignmentID uuid.UUID) ([]historyModel.StatusHistoryModel, error) {
	var rows []historyModel.StatusHistoryModel
	err := s.DB.
		Where("status_history_team_assignment_id = ?", teamAssignmentID).
		Order("status_history_changed_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListFilter narrows the paged listing; used only when neither id filter is
// present (see controller precedence).
type ListFilter struct {
	ChangedBy *uuid.UUID
	Status    *string
}

func (s *Service) List(filter ListFilter, offset, limit int) ([]historyModel.StatusHistoryModel, int64, error) {
	q := s.DB.Model(&historyModel.StatusHistoryModel{})
	if filter.ChangedBy != nil {
		q = q.Where("status_history_changed_by = ?", *filter.ChangedBy)
	}
	if filter.Status != nil {
		q = q.Where("status_history_new_status = ?", *filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []historyModel.StatusHistoryModel
	err := q.Order("status_history_changed_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// StatusCount is one row of the stats aggregate.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Stats returns transition counts grouped by target status plus the total.
func (s *Service) Stats() ([]StatusCount, int64, error) {
	var rows []StatusCount
	err := s.DB.Model(&historyModel.StatusHistoryModel{}).
		Select("status_history_new_status AS status, COUNT(*) AS count").
		Group("status_history_new_status").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	for _, r := range rows {
		total += r.Count
	}
	return rows, total, nil
}
