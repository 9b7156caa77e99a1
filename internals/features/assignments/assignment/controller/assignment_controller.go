package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "talenthub_backend/internals/features/assignments/assignment/dto"
	assignmentService "talenthub_backend/internals/features/assignments/assignment/service"
	helper "talenthub_backend/internals/helpers"
)

type AssignmentController struct {
	Service   *assignmentService.Service
	Validator *validator.Validate
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{
		Service:   assignmentService.New(db),
		Validator: validator.New(),
	}
}

// mapServiceError translates service sentinels into the error envelope.
func mapServiceError(c *fiber.Ctx, err error) error {
	var ite *assignmentService.InvalidTransitionError
	switch {
	case errors.Is(err, assignmentService.ErrAssignmentNotFound),
		errors.Is(err, assignmentService.ErrTeamAssignmentNotFound),
		errors.Is(err, assignmentService.ErrJobNotFound),
		errors.Is(err, assignmentService.ErrDeveloperNotFound),
		errors.Is(err, assignmentService.ErrTeamNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, assignmentService.ErrDuplicateAssignment):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, assignmentService.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, "not allowed on this assignment")
	case errors.Is(err, assignmentService.ErrUnknownStatus):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &ite):
		return helper.JsonError(c, fiber.StatusBadRequest, ite.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func actorFromCtx(c *fiber.Ctx) (assignmentService.Actor, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return assignmentService.Actor{}, err
	}
	return assignmentService.Actor{ID: userID, Role: helper.GetRoleFromToken(c)}, nil
}

func auditFromCtx(c *fiber.Ctx, req *dto.UpdateStatusRequest) assignmentService.AuditOptions {
	ip := c.IP()
	ua := c.Get(fiber.HeaderUserAgent)
	audit := assignmentService.AuditOptions{
		Reason:   req.Reason,
		Notes:    req.Notes,
		Metadata: req.Metadata,
	}
	if ip != "" {
		audit.IPAddress = &ip
	}
	if ua != "" {
		audit.UserAgent = &ua
	}
	return audit
}

// POST /v1/assignments
func (ctrl *AssignmentController) Create(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	aType := ""
	if req.AssignmentType != nil {
		aType = *req.AssignmentType
	}
	row, err := ctrl.Service.Create(actor, assignmentService.CreateInput{
		JobID:       req.AssignmentJobID,
		DeveloperID: req.AssignmentDeveloperID,
		Type:        aType,
		Notes:       req.AssignmentNotes,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "assignment created", row)
}

// POST /v1/assignments/assign — top-ranked developer from the latest scoring run.
func (ctrl *AssignmentController) AssignTopRanked(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AssignTopRankedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Service.AssignTopRanked(actor, req.AssignmentJobID, req.AssignmentNotes)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "assignment created from scoring run", row)
}

// GET /v1/assignments
func (ctrl *AssignmentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var filter assignmentService.ListFilter
	if v := c.Query("jobId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid jobId")
		}
		filter.JobID = &id
	}
	if v := c.Query("developerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid developerId")
		}
		filter.DeveloperID = &id
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

// GET /v1/assignments/:id
func (ctrl *AssignmentController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid assignment id")
	}
	row, err := ctrl.Service.Get(id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// PATCH /v1/assignments/:id — notes and type only; status has its own route.
func (ctrl *AssignmentController) Update(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid assignment id")
	}

	var req dto.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Service.Update(actor, id, req.AssignmentNotes, req.AssignmentType)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "assignment updated", row)
}

// PATCH /v1/assignments/:id/status
func (ctrl *AssignmentController) UpdateStatus(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid assignment id")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Service.Transition(id, req.Status, actor, auditFromCtx(c, &req))
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "status updated", row)
}

// DELETE /v1/assignments/:id
func (ctrl *AssignmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid assignment id")
	}
	if err := ctrl.Service.Delete(id); err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonDeleted(c, "assignment deleted", fiber.Map{"assignment_id": id})
}

// GET /v1/assignments/suggestions/:jobId
func (ctrl *AssignmentController) Suggestions(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid job id")
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	out, err := ctrl.Service.Suggestions(jobID, limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

/* =========================
   Team assignments
========================= */

// POST /v1/assignments/team
func (ctrl *AssignmentController) CreateTeam(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateTeamAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Service.CreateTeam(actor, assignmentService.CreateTeamInput{
		JobID:  req.TeamAssignmentJobID,
		TeamID: req.TeamAssignmentTeamID,
		Notes:  req.TeamAssignmentNotes,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "team assignment created", row)
}

// POST /v1/assignments/team/create-and-assign
func (ctrl *AssignmentController) CreateAndAssign(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAndAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Service.CreateAndAssign(actor, assignmentService.CreateAndAssignInput{
		JobID:     req.TeamAssignmentJobID,
		TeamName:  req.TeamName,
		MemberIDs: req.MemberIDs,
		Notes:     req.TeamAssignmentNotes,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "team created and assigned", row)
}

// PATCH /v1/assignments/team/:id/status
func (ctrl *AssignmentController) UpdateTeamStatus(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid team assignment id")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Service.TransitionTeam(id, req.Status, actor, auditFromCtx(c, &req))
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "status updated", row)
}
