package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	jobModel "talenthub_backend/internals/features/jobs/model"
	scoringModel "talenthub_backend/internals/features/scoring/model"
)

// GetPerformance returns the cached metric row, recomputing it on first
// access.
func (s *Service) GetPerformance(developerID uuid.UUID) (*scoringModel.DeveloperPerformanceMetricModel, error) {
	var row scoringModel.DeveloperPerformanceMetricModel
	err := s.DB.Where("performance_metric_developer_id = ?", developerID).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.RecomputePerformance(developerID)
}

// RecomputePerformance rebuilds the derived metric row from assignment
// history and upserts it. The row is a cache, never an authoritative source.
func (s *Service) RecomputePerformance(developerID uuid.UUID) (*scoringModel.DeveloperPerformanceMetricModel, error) {
	var history []assignmentModel.AssignmentModel
	if err := s.DB.
		Where("assignment_developer_id = ? AND assignment_status IN ?", developerID,
			[]string{assignmentModel.StatusCompleted, assignmentModel.StatusFailed, assignmentModel.StatusCancelled}).
		Find(&history).Error; err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var completed, failed, cancelled int
	var cycleSum, cycleN float64
	var onTime, onTimeN float64
	var qualitySum, qualityN float64

	for _, a := range history {
		switch a.AssignmentStatus {
		case assignmentModel.StatusCompleted:
			completed++
		case assignmentModel.StatusFailed:
			failed++
		case assignmentModel.StatusCancelled:
			cancelled++
		}

		if a.AssignmentStatus == assignmentModel.StatusCompleted &&
			a.AssignmentStartedAt != nil && a.AssignmentCompletedAt != nil {
			hours := a.AssignmentCompletedAt.Sub(*a.AssignmentStartedAt).Hours()
			cycleSum += hours
			cycleN++

			// On time = finished within the job's estimate (when one exists).
			var job jobModel.JobModel
			if err := s.DB.Where("job_id = ?", a.AssignmentJobID).First(&job).Error; err == nil {
				if job.JobEstimatedHours != nil && *job.JobEstimatedHours > 0 {
					onTimeN++
					if hours <= *job.JobEstimatedHours {
						onTime++
					}
				}
			}
		}

		if a.AssignmentQualityRating != nil {
			qualitySum += *a.AssignmentQualityRating
			qualityN++
		}
	}

	row := scoringModel.DeveloperPerformanceMetricModel{
		PerformanceMetricDeveloperID:    developerID,
		PerformanceMetricCompletedCount: completed,
		PerformanceMetricFailedCount:    failed,
		PerformanceMetricCancelledCount: cancelled,
	}
	if cycleN > 0 {
		row.PerformanceMetricAvgCycleHours = cycleSum / cycleN
	}
	if onTimeN > 0 {
		row.PerformanceMetricOnTimeRate = onTime / onTimeN
	}
	if qualityN > 0 {
		row.PerformanceMetricAvgQuality = qualitySum / qualityN
	}

	var existing scoringModel.DeveloperPerformanceMetricModel
	err := s.DB.Where("performance_metric_developer_id = ?", developerID).First(&existing).Error
	switch {
	case err == nil:
		if err := s.DB.Model(&existing).Updates(map[string]any{
			"performance_metric_completed_count": row.PerformanceMetricCompletedCount,
			"performance_metric_failed_count":    row.PerformanceMetricFailedCount,
			"performance_metric_cancelled_count": row.PerformanceMetricCancelledCount,
			"performance_metric_on_time_rate":    row.PerformanceMetricOnTimeRate,
			"performance_metric_avg_cycle_hours": row.PerformanceMetricAvgCycleHours,
			"performance_metric_avg_quality":     row.PerformanceMetricAvgQuality,
		}).Error; err != nil {
			return nil, fmt.Errorf("update metric: %w", err)
		}
		return s.GetPerformance(developerID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.DB.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("create metric: %w", err)
		}
		return &row, nil
	default:
		return nil, err
	}
}
