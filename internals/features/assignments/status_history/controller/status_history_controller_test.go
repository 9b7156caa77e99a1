package controller

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	historyModel "talenthub_backend/internals/features/assignments/status_history/model"
	historyService "talenthub_backend/internals/features/assignments/status_history/service"
)

func testApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&assignmentModel.AssignmentModel{},
		&assignmentModel.TeamAssignmentModel{},
		&historyModel.StatusHistoryModel{},
	))

	app := fiber.New()
	ctrl := NewStatusHistoryController(db)
	app.Get("/status-history/all", ctrl.List)
	return app, db
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

// One job carrying both a solo assignment and a team assignment, with audit
// rows on each.
func seedAggregateFixture(t *testing.T, db *gorm.DB) (assignmentModel.AssignmentModel, assignmentModel.TeamAssignmentModel) {
	t.Helper()
	jobID := uuid.New()
	actor := uuid.New()

	assignment := assignmentModel.AssignmentModel{
		AssignmentJobID:       jobID,
		AssignmentDeveloperID: uuid.New(),
		AssignmentAssignedBy:  actor,
		AssignmentStatus:      assignmentModel.StatusInProgress,
	}
	require.NoError(t, db.Create(&assignment).Error)

	teamAssignment := assignmentModel.TeamAssignmentModel{
		TeamAssignmentJobID:      jobID,
		TeamAssignmentTeamID:     uuid.New(),
		TeamAssignmentAssignedBy: actor,
		TeamAssignmentStatus:     assignmentModel.StatusPending,
	}
	require.NoError(t, db.Create(&teamAssignment).Error)

	rec := historyService.New(db)
	pending := assignmentModel.StatusPending
	rec.Record(nil, historyService.RecordOptions{
		AssignmentID: &assignment.AssignmentID,
		NewStatus:    assignmentModel.StatusPending,
		ChangedBy:    actor,
	})
	time.Sleep(5 * time.Millisecond)
	rec.Record(nil, historyService.RecordOptions{
		AssignmentID:   &assignment.AssignmentID,
		PreviousStatus: &pending,
		NewStatus:      assignmentModel.StatusInProgress,
		ChangedBy:      actor,
	})
	rec.Record(nil, historyService.RecordOptions{
		TeamAssignmentID: &teamAssignment.TeamAssignmentID,
		NewStatus:        assignmentModel.StatusPending,
		ChangedBy:        actor,
	})
	return assignment, teamAssignment
}

func TestListAssignmentIdWinsOverOtherFilters(t *testing.T) {
	app, db := testApp(t)
	assignment, teamAssignment := seedAggregateFixture(t, db)

	// teamAssignmentId and status ride along but must be ignored.
	status, body := getJSON(t, app, "/status-history/all"+
		"?assignmentId="+assignment.AssignmentID.String()+
		"&teamAssignmentId="+teamAssignment.TeamAssignmentID.String()+
		"&status=CANCELLED")
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	agg := data["assignment"].(map[string]any)
	assert.Equal(t, assignment.AssignmentID.String(), agg["assignment_id"])

	// Full ordered trail, oldest first.
	history := data["history"].([]any)
	require.Len(t, history, 2)
	first := history[0].(map[string]any)
	second := history[1].(map[string]any)
	assert.Equal(t, "PENDING", first["status_history_new_status"])
	assert.Nil(t, first["status_history_previous_status"])
	assert.Equal(t, "IN_PROGRESS", second["status_history_new_status"])
	assert.Equal(t, "PENDING", second["status_history_previous_status"])

	// Team assignments on the same job come along for context.
	related := data["team_assignments"].([]any)
	require.Len(t, related, 1)
	row := related[0].(map[string]any)
	assert.Equal(t, teamAssignment.TeamAssignmentID.String(), row["team_assignment_id"])

	// No pagination on the aggregate form.
	_, paged := body["pagination"]
	assert.False(t, paged)
}

func TestListTeamAssignmentIdWinsOverFilters(t *testing.T) {
	app, db := testApp(t)
	_, teamAssignment := seedAggregateFixture(t, db)

	status, body := getJSON(t, app, "/status-history/all"+
		"?teamAssignmentId="+teamAssignment.TeamAssignmentID.String()+
		"&status=CANCELLED")
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	agg := data["team_assignment"].(map[string]any)
	assert.Equal(t, teamAssignment.TeamAssignmentID.String(), agg["team_assignment_id"])
	history := data["history"].([]any)
	require.Len(t, history, 1)
}

func TestListUnknownAssignmentId(t *testing.T) {
	app, _ := testApp(t)

	status, body := getJSON(t, app,
		"/status-history/all?assignmentId="+uuid.NewString())
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}
