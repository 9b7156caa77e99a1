package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	historyModel "talenthub_backend/internals/features/assignments/status_history/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&historyModel.StatusHistoryModel{}))
	return db
}

func TestRecordAndListOrder(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	assignmentID := uuid.New()
	actor := uuid.New()
	prev := "PENDING"

	svc.Record(nil, RecordOptions{
		AssignmentID: &assignmentID,
		NewStatus:    "PENDING",
		ChangedBy:    actor,
	})
	// Distinct timestamps so the ASC ordering is observable.
	time.Sleep(5 * time.Millisecond)
	svc.Record(nil, RecordOptions{
		AssignmentID:   &assignmentID,
		PreviousStatus: &prev,
		NewStatus:      "IN_PROGRESS",
		ChangedBy:      actor,
	})

	rows, err := svc.ListByAssignment(assignmentID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PENDING", rows[0].StatusHistoryNewStatus)
	assert.Equal(t, "IN_PROGRESS", rows[1].StatusHistoryNewStatus)
	assert.Nil(t, rows[0].StatusHistoryPreviousStatus)
	require.NotNil(t, rows[1].StatusHistoryPreviousStatus)
	assert.Equal(t, "PENDING", *rows[1].StatusHistoryPreviousStatus)
}

func TestRecordSkipsWithoutActor(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	assignmentID := uuid.New()
	svc.Record(nil, RecordOptions{
		AssignmentID: &assignmentID,
		NewStatus:    "PENDING",
		ChangedBy:    uuid.Nil,
	})

	rows, err := svc.ListByAssignment(assignmentID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListFilters(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	alice := uuid.New()
	bob := uuid.New()
	id := uuid.New()

	svc.Record(nil, RecordOptions{AssignmentID: &id, NewStatus: "PENDING", ChangedBy: alice})
	svc.Record(nil, RecordOptions{AssignmentID: &id, NewStatus: "IN_PROGRESS", ChangedBy: alice})
	svc.Record(nil, RecordOptions{AssignmentID: &id, NewStatus: "CANCELLED", ChangedBy: bob})

	rows, total, err := svc.List(ListFilter{ChangedBy: &alice}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	status := "CANCELLED"
	rows, total, err = svc.List(ListFilter{Status: &status}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, bob, rows[0].StatusHistoryChangedBy)
}

func TestStats(t *testing.T) {
	db := testDB(t)
	svc := New(db)

	actor := uuid.New()
	id := uuid.New()
	for _, status := range []string{"PENDING", "IN_PROGRESS", "COMPLETED", "PENDING"} {
		svc.Record(nil, RecordOptions{AssignmentID: &id, NewStatus: status, ChangedBy: actor})
	}

	rows, total, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	byStatus := map[string]int64{}
	for _, r := range rows {
		byStatus[r.Status] = r.Count
	}
	assert.EqualValues(t, 2, byStatus["PENDING"])
	assert.EqualValues(t, 1, byStatus["IN_PROGRESS"])
	assert.EqualValues(t, 1, byStatus["COMPLETED"])
}
