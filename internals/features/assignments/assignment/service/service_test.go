package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	historyModel "talenthub_backend/internals/features/assignments/status_history/model"
	jobModel "talenthub_backend/internals/features/jobs/model"
	scoringModel "talenthub_backend/internals/features/scoring/model"
	teamModel "talenthub_backend/internals/features/teams/model"
	userModel "talenthub_backend/internals/features/users/user/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.DeveloperSkillModel{},
		&userModel.DeveloperAvailabilityModel{},
		&jobModel.JobModel{},
		&teamModel.TeamModel{},
		&teamModel.TeamMemberModel{},
		&assignmentModel.AssignmentModel{},
		&assignmentModel.TeamAssignmentModel{},
		&historyModel.StatusHistoryModel{},
		&scoringModel.ScoringConfigModel{},
		&scoringModel.ScoringRunModel{},
		&scoringModel.AssignmentScoreModel{},
		&scoringModel.DeveloperPerformanceMetricModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *userModel.UserModel {
	t.Helper()
	now := time.Now()
	u := userModel.UserModel{
		UserName:         "user " + uuid.NewString()[:8],
		UserEmail:        uuid.NewString() + "@example.com",
		UserPasswordHash: "x",
		UserRole:         role,
		UserIsActive:     true,
		UserLastActiveAt: &now,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedJob(t *testing.T, db *gorm.DB, clientID uuid.UUID) *jobModel.JobModel {
	t.Helper()
	j := jobModel.JobModel{
		JobClientID: clientID,
		JobTitle:    "build the thing",
		JobStatus:   jobModel.JobStatusApproved,
		JobPriority: jobModel.JobPriorityMedium,
	}
	require.NoError(t, db.Create(&j).Error)
	return &j
}
