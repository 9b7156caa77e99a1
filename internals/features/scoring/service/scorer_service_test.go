package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talenthub_backend/internals/constants"
	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	jobModel "talenthub_backend/internals/features/jobs/model"
	scoringModel "talenthub_backend/internals/features/scoring/model"
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
		&assignmentModel.AssignmentModel{},
		&scoringModel.ScoringConfigModel{},
		&scoringModel.ScoringRunModel{},
		&scoringModel.AssignmentScoreModel{},
		&scoringModel.DeveloperPerformanceMetricModel{},
	))
	return db
}

func seedDeveloper(t *testing.T, db *gorm.DB, name string, skills ...string) *userModel.UserModel {
	t.Helper()
	now := time.Now()
	u := userModel.UserModel{
		UserName:         name,
		UserEmail:        uuid.NewString() + "@example.com",
		UserPasswordHash: "x",
		UserRole:         constants.RoleDeveloper,
		UserIsActive:     true,
		UserLastActiveAt: &now,
	}
	require.NoError(t, db.Create(&u).Error)
	for _, s := range skills {
		require.NoError(t, db.Create(&userModel.DeveloperSkillModel{
			DeveloperSkillUserID: u.UserID,
			DeveloperSkillName:   s,
			DeveloperSkillLevel:  userModel.SkillLevelExpert,
		}).Error)
	}
	return &u
}

func seedScoringJob(t *testing.T, db *gorm.DB, requiredSkills string) *jobModel.JobModel {
	t.Helper()
	j := jobModel.JobModel{
		JobClientID: uuid.New(),
		JobTitle:    "scored job",
		JobStatus:   jobModel.JobStatusApproved,
		JobPriority: jobModel.JobPriorityMedium,
	}
	if requiredSkills != "" {
		j.JobRequiredSkills = datatypes.JSON([]byte(requiredSkills))
	}
	require.NoError(t, db.Create(&j).Error)
	return &j
}

const goExpertSkills = `[{"skill":"Go","level":"EXPERT","weight":1,"required":true}]`

func TestScoreJobRanksBySkill(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)
	match := seedDeveloper(t, db, "match", "Go")
	seedDeveloper(t, db, "miss", "Cobol") // below the qualification floor

	result, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New()})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, match.UserID, result.Results[0].DeveloperID)
	assert.Equal(t, 1, result.Results[0].Rank)
	assert.InDelta(t, 0.7, result.Results[0].Breakdown.SkillMatch, 1e-9)
}

func TestScoreJobUnqualifiedCutoff(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)
	seedDeveloper(t, db, "nomatch", "Rust")

	result, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestScoreJobScoresStayInRange(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)
	for i := 0; i < 5; i++ {
		seedDeveloper(t, db, "dev", "Go")
	}

	result, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New()})
	require.NoError(t, err)
	require.NotEmpty(t, result.Results)
	for _, r := range result.Results {
		assert.GreaterOrEqual(t, r.TotalScore, 0.0)
		assert.LessOrEqual(t, r.TotalScore, 1.0)
		for _, f := range []float64{
			r.Breakdown.SkillMatch, r.Breakdown.Performance,
			r.Breakdown.Availability, r.Breakdown.Workload, r.Breakdown.PriorityBonus,
		} {
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 1.0)
		}
	}
}

func TestScoreJobDeterministicTieBreak(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)
	// Identical profiles: totals tie and the order must fall back to the id.
	seedDeveloper(t, db, "twin-a", "Go")
	seedDeveloper(t, db, "twin-b", "Go")
	seedDeveloper(t, db, "twin-c", "Go")

	first, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New()})
	require.NoError(t, err)
	second, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New()})
	require.NoError(t, err)

	require.Len(t, first.Results, 3)
	require.Len(t, second.Results, 3)
	for i := range first.Results {
		assert.Equal(t, first.Results[i].DeveloperID, second.Results[i].DeveloperID)
		assert.Equal(t, first.Results[i].TotalScore, second.Results[i].TotalScore)
		assert.Equal(t, i+1, first.Results[i].Rank)
	}
	for i := 1; i < len(first.Results); i++ {
		assert.Less(t, first.Results[i-1].DeveloperID.String(), first.Results[i].DeveloperID.String())
	}
}

func TestScoreJobLimit(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)
	for i := 0; i < 6; i++ {
		seedDeveloper(t, db, "dev", "Go")
	}

	result, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New(), Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, 1, result.Results[0].Rank)
	assert.Equal(t, 2, result.Results[1].Rank)
}

func TestScoreJobMinScoreFilter(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)
	seedDeveloper(t, db, "dev", "Go")

	high := 0.99
	result, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New(), MinScore: &high})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestScoreJobExcludesInactiveDevelopers(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)

	stale := seedDeveloper(t, db, "stale", "Go")
	old := time.Now().Add(-60 * 24 * time.Hour)
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("user_id = ?", stale.UserID).
		Update("user_last_active_at", old).Error)

	result, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, result.Results)

	result, err = svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New(), IncludeInactiveUsers: true})
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestScoreJobPersistsRun(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	job := seedScoringJob(t, db, goExpertSkills)
	dev := seedDeveloper(t, db, "dev", "Go")

	result, err := svc.ScoreJob(job.JobID, ScoreOptions{TriggeredBy: uuid.New()})
	require.NoError(t, err)

	run, err := svc.GetRun(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, job.JobID, run.ScoringRunJobID)
	require.Len(t, run.Scores, 1)
	assert.Equal(t, dev.UserID, run.Scores[0].AssignmentScoreDeveloperID)
	assert.Equal(t, 1, run.Scores[0].AssignmentScoreRank)
	assert.InDelta(t, result.Results[0].TotalScore, run.Scores[0].AssignmentScoreTotal, 1e-9)
	assert.InDelta(t, 0.7, run.Scores[0].Breakdown().SkillMatch, 1e-9)

	runs, total, err := svc.ListRuns(&job.JobID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, runs, 1)
}

func TestScoreJobMissingJob(t *testing.T) {
	db := testDB(t)
	svc := New(db)
	_, err := svc.ScoreJob(uuid.New(), ScoreOptions{TriggeredBy: uuid.New()})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestGetRunMissing(t *testing.T) {
	db := testDB(t)
	svc := New(db)
	_, err := svc.GetRun(uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
}
