package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
)

func seedTerminalAssignment(t *testing.T, db *gorm.DB, devID, jobID uuid.UUID, status string, startedHoursAgo, durationHours float64, quality *float64) {
	t.Helper()
	row := assignmentModel.AssignmentModel{
		AssignmentJobID:         jobID,
		AssignmentDeveloperID:   devID,
		AssignmentAssignedBy:    uuid.New(),
		AssignmentStatus:        status,
		AssignmentType:          assignmentModel.AssignmentTypeDirect,
		AssignmentQualityRating: quality,
	}
	if status == assignmentModel.StatusCompleted {
		started := time.Now().Add(-time.Duration(startedHoursAgo * float64(time.Hour)))
		completed := started.Add(time.Duration(durationHours * float64(time.Hour)))
		row.AssignmentStartedAt = &started
		row.AssignmentCompletedAt = &completed
	}
	require.NoError(t, db.Create(&row).Error)
}

func TestRecomputePerformanceCounts(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	est := 20.0
	job := seedScoringJob(t, db, "")
	require.NoError(t, db.Model(job).Update("job_estimated_hours", est).Error)
	dev := seedDeveloper(t, db, "dev")

	q := 4.0
	seedTerminalAssignment(t, db, dev.UserID, job.JobID, assignmentModel.StatusCompleted, 100, 10, &q)  // on time
	seedTerminalAssignment(t, db, dev.UserID, job.JobID, assignmentModel.StatusCompleted, 200, 30, nil) // late
	seedTerminalAssignment(t, db, dev.UserID, job.JobID, assignmentModel.StatusFailed, 0, 0, nil)
	seedTerminalAssignment(t, db, dev.UserID, job.JobID, assignmentModel.StatusCancelled, 0, 0, nil)

	row, err := svc.RecomputePerformance(dev.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.PerformanceMetricCompletedCount)
	assert.Equal(t, 1, row.PerformanceMetricFailedCount)
	assert.Equal(t, 1, row.PerformanceMetricCancelledCount)
	assert.InDelta(t, 20.0, row.PerformanceMetricAvgCycleHours, 1e-6)
	assert.InDelta(t, 0.5, row.PerformanceMetricOnTimeRate, 1e-9)
	assert.InDelta(t, 4.0, row.PerformanceMetricAvgQuality, 1e-9)
}

func TestGetPerformanceRecomputesOnMiss(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	dev := seedDeveloper(t, db, "fresh")
	row, err := svc.GetPerformance(dev.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, row.PerformanceMetricCompletedCount)
	assert.Equal(t, dev.UserID, row.PerformanceMetricDeveloperID)
}

func TestRecomputePerformanceUpserts(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, "")
	dev := seedDeveloper(t, db, "dev")

	first, err := svc.RecomputePerformance(dev.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.PerformanceMetricCompletedCount)

	seedTerminalAssignment(t, db, dev.UserID, job.JobID, assignmentModel.StatusCompleted, 10, 5, nil)
	second, err := svc.RecomputePerformance(dev.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.PerformanceMetricCompletedCount)
	assert.Equal(t, first.PerformanceMetricID, second.PerformanceMetricID)
}
