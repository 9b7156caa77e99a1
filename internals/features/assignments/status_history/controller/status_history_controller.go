package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	historyModel "talenthub_backend/internals/features/assignments/status_history/model"
	historyService "talenthub_backend/internals/features/assignments/status_history/service"
	helper "talenthub_backend/internals/helpers"
)

type StatusHistoryController struct {
	DB      *gorm.DB
	Service *historyService.Service
}

func NewStatusHistoryController(db *gorm.DB) *StatusHistoryController {
	return &StatusHistoryController{DB: db, Service: historyService.New(db)}
}

// AssignmentHistory is the aggregate returned for an assignmentId query.
type AssignmentHistory struct {
	Assignment      *assignmentModel.AssignmentModel      `json:"assignment"`
	History         []historyModel.StatusHistoryModel     `json:"history"`
	TeamAssignments []assignmentModel.TeamAssignmentModel `json:"team_assignments"`
}

// TeamAssignmentHistory is the aggregate for a teamAssignmentId query.
type TeamAssignmentHistory struct {
	TeamAssignment *assignmentModel.TeamAssignmentModel `json:"team_assignment"`
	History        []historyModel.StatusHistoryModel    `json:"history"`
}

// GET /v1/status-history
//
// Query precedence: assignmentId wins over teamAssignmentId, which wins over
// the changedBy/status filters. The id forms return one aggregate; the filter
// form returns a paged list (newest first).
func (ctrl *StatusHistoryController) List(c *fiber.Ctx) error {
	if v := c.Query("assignmentId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid assignmentId")
		}
		return ctrl.assignmentAggregate(c, id)
	}

	if v := c.Query("teamAssignmentId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid teamAssignmentId")
		}
		return ctrl.teamAssignmentAggregate(c, id)
	}

	p := helper.ResolvePaging(c, 20, 100)
	var filter historyService.ListFilter
	if v := c.Query("changedBy"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid changedBy")
		}
		filter.ChangedBy = &id
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	rows, total, err := ctrl.Service.List(filter, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

func (ctrl *StatusHistoryController) assignmentAggregate(c *fiber.Ctx, id uuid.UUID) error {
	var assignment assignmentModel.AssignmentModel
	if err := ctrl.DB.Where("assignment_id = ?", id).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	history, err := ctrl.Service.ListByAssignment(id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Team assignments on the same job give the reader the full picture of
	// who else is working it.
	var teamAssignments []assignmentModel.TeamAssignmentModel
	if err := ctrl.DB.Where("team_assignment_job_id = ?", assignment.AssignmentJobID).
		Find(&teamAssignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", AssignmentHistory{
		Assignment:      &assignment,
		History:         history,
		TeamAssignments: teamAssignments,
	})
}

func (ctrl *StatusHistoryController) teamAssignmentAggregate(c *fiber.Ctx, id uuid.UUID) error {
	var teamAssignment assignmentModel.TeamAssignmentModel
	if err := ctrl.DB.Where("team_assignment_id = ?", id).First(&teamAssignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "team assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	history, err := ctrl.Service.ListByTeamAssignment(id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", TeamAssignmentHistory{
		TeamAssignment: &teamAssignment,
		History:        history,
	})
}

// GET /v1/status-history/stats
func (ctrl *StatusHistoryController) Stats(c *fiber.Ctx) error {
	rows, total, err := ctrl.Service.Stats()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"by_status": rows,
		"total":     total,
	})
}
