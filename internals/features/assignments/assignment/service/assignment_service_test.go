package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"talenthub_backend/internals/constants"
	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	historyModel "talenthub_backend/internals/features/assignments/status_history/model"
	teamModel "talenthub_backend/internals/features/teams/model"
	userModel "talenthub_backend/internals/features/users/user/model"
)

func TestCreateAssignment(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	dev := seedUser(t, db, constants.RoleDeveloper)
	job := seedJob(t, db, client.UserID)
	actor := Actor{ID: client.UserID, Role: constants.RoleClient}

	row, err := svc.Create(actor, CreateInput{JobID: job.JobID, DeveloperID: dev.UserID})
	require.NoError(t, err)
	assert.Equal(t, assignmentModel.StatusPending, row.AssignmentStatus)
	assert.Equal(t, assignmentModel.AssignmentTypeDirect, row.AssignmentType)
	assert.Equal(t, client.UserID, row.AssignmentAssignedBy)

	// Creation writes the initial audit record with no previous status.
	var recs []historyModel.StatusHistoryModel
	require.NoError(t, db.Where("status_history_assignment_id = ?", row.AssignmentID).Find(&recs).Error)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].StatusHistoryPreviousStatus)
	assert.Equal(t, assignmentModel.StatusPending, recs[0].StatusHistoryNewStatus)
}

func TestCreateAssignmentMissingJob(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	dev := seedUser(t, db, constants.RoleDeveloper)
	actor := Actor{ID: uuid.New(), Role: constants.RoleAdmin}

	_, err := svc.Create(actor, CreateInput{JobID: uuid.New(), DeveloperID: dev.UserID})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestCreateAssignmentRejectsNonDeveloper(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	job := seedJob(t, db, client.UserID)
	actor := Actor{ID: client.UserID, Role: constants.RoleClient}

	_, err := svc.Create(actor, CreateInput{JobID: job.JobID, DeveloperID: client.UserID})
	assert.ErrorIs(t, err, ErrDeveloperNotFound)
}

func TestCreateAssignmentDuplicate(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	dev := seedUser(t, db, constants.RoleDeveloper)
	job := seedJob(t, db, client.UserID)
	actor := Actor{ID: client.UserID, Role: constants.RoleClient}

	_, err := svc.Create(actor, CreateInput{JobID: job.JobID, DeveloperID: dev.UserID})
	require.NoError(t, err)

	_, err = svc.Create(actor, CreateInput{JobID: job.JobID, DeveloperID: dev.UserID})
	assert.ErrorIs(t, err, ErrDuplicateAssignment)
}

func TestCreateAssignmentAllowedAfterCancellation(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	dev := seedUser(t, db, constants.RoleDeveloper)
	job := seedJob(t, db, client.UserID)
	admin := Actor{ID: seedUser(t, db, constants.RoleAdmin).UserID, Role: constants.RoleAdmin}

	first, err := svc.Create(admin, CreateInput{JobID: job.JobID, DeveloperID: dev.UserID})
	require.NoError(t, err)
	_, err = svc.Transition(first.AssignmentID, assignmentModel.StatusCancelled, admin, AuditOptions{})
	require.NoError(t, err)

	// The duplicate guard only blocks live assignments.
	_, err = svc.Create(admin, CreateInput{JobID: job.JobID, DeveloperID: dev.UserID})
	assert.NoError(t, err)
}

func TestUpdateAssignmentOwnershipGate(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	other := seedUser(t, db, constants.RoleClient)
	dev := seedUser(t, db, constants.RoleDeveloper)
	job := seedJob(t, db, client.UserID)
	assigner := Actor{ID: client.UserID, Role: constants.RoleClient}

	row, err := svc.Create(assigner, CreateInput{JobID: job.JobID, DeveloperID: dev.UserID})
	require.NoError(t, err)

	notes := "revised scope"
	_, err = svc.Update(Actor{ID: other.UserID, Role: constants.RoleClient}, row.AssignmentID, &notes, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(assigner, row.AssignmentID, &notes, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignmentNotes)
	assert.Equal(t, notes, *updated.AssignmentNotes)
}

func TestDeleteAssignment(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	dev := seedUser(t, db, constants.RoleDeveloper)
	job := seedJob(t, db, client.UserID)

	row, err := svc.Create(Actor{ID: client.UserID, Role: constants.RoleClient},
		CreateInput{JobID: job.JobID, DeveloperID: dev.UserID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(row.AssignmentID))
	_, err = svc.Get(row.AssignmentID)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	assert.ErrorIs(t, svc.Delete(row.AssignmentID), ErrAssignmentNotFound)
}

func TestCreateTeamAssignment(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	job := seedJob(t, db, client.UserID)
	team := teamModel.TeamModel{TeamName: "core", TeamCreatedBy: client.UserID}
	require.NoError(t, db.Create(&team).Error)
	actor := Actor{ID: client.UserID, Role: constants.RoleClient}

	row, err := svc.CreateTeam(actor, CreateTeamInput{JobID: job.JobID, TeamID: team.TeamID})
	require.NoError(t, err)
	assert.Equal(t, assignmentModel.StatusPending, row.TeamAssignmentStatus)

	_, err = svc.CreateTeam(actor, CreateTeamInput{JobID: job.JobID, TeamID: team.TeamID})
	assert.ErrorIs(t, err, ErrDuplicateAssignment)

	_, err = svc.CreateTeam(actor, CreateTeamInput{JobID: job.JobID, TeamID: uuid.New()})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestCreateAndAssign(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	devA := seedUser(t, db, constants.RoleDeveloper)
	devB := seedUser(t, db, constants.RoleDeveloper)
	job := seedJob(t, db, client.UserID)

	row, err := svc.CreateAndAssign(Actor{ID: client.UserID, Role: constants.RoleClient}, CreateAndAssignInput{
		JobID:     job.JobID,
		TeamName:  "strike team",
		MemberIDs: []uuid.UUID{devA.UserID, devB.UserID},
	})
	require.NoError(t, err)

	var members int64
	require.NoError(t, db.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ?", row.TeamAssignmentTeamID).Count(&members).Error)
	assert.EqualValues(t, 2, members)
}

func TestSuggestionsOrdering(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	job := seedJob(t, db, client.UserID)
	job.JobRequiredSkills = datatypes.JSON([]byte(`[
		{"skill":"Go","level":"EXPERT","weight":1,"required":true},
		{"skill":"Postgres","level":"INTERMEDIATE","weight":1,"required":true}
	]`))
	require.NoError(t, db.Save(job).Error)

	full := seedUser(t, db, constants.RoleDeveloper)
	partial := seedUser(t, db, constants.RoleDeveloper)
	none := seedUser(t, db, constants.RoleDeveloper)

	addSkill := func(userID uuid.UUID, name string) {
		require.NoError(t, db.Create(&userModel.DeveloperSkillModel{
			DeveloperSkillUserID: userID,
			DeveloperSkillName:   name,
			DeveloperSkillLevel:  userModel.SkillLevelExpert,
		}).Error)
	}
	addSkill(full.UserID, "Go")
	addSkill(full.UserID, "Postgres")
	addSkill(partial.UserID, "Go")
	addSkill(none.UserID, "Rust")

	out, err := svc.Suggestions(job.JobID, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, full.UserID, out[0].DeveloperID)
	assert.InDelta(t, 1.0, out[0].OverlapScore, 1e-9)
	assert.Equal(t, partial.UserID, out[1].DeveloperID)
	assert.InDelta(t, 0.5, out[1].OverlapScore, 1e-9)
}

func TestSuggestionsMissingJob(t *testing.T) {
	db := testDB(t)
	svc := New(db)
	_, err := svc.Suggestions(uuid.New(), 10)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestSuggestionsFallsBackToTags(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	client := seedUser(t, db, constants.RoleClient)
	job := seedJob(t, db, client.UserID)
	job.JobTags = datatypes.JSON([]byte(`["react"]`))
	require.NoError(t, db.Save(job).Error)

	dev := seedUser(t, db, constants.RoleDeveloper)
	require.NoError(t, db.Create(&userModel.DeveloperSkillModel{
		DeveloperSkillUserID: dev.UserID,
		DeveloperSkillName:   "React",
		DeveloperSkillLevel:  userModel.SkillLevelIntermediate,
	}).Error)

	out, err := svc.Suggestions(job.JobID, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, dev.UserID, out[0].DeveloperID)
}
