package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "talenthub_backend/internals/features/scoring/dto"
	scoringService "talenthub_backend/internals/features/scoring/service"
	helper "talenthub_backend/internals/helpers"
)

type ScoringController struct {
	Service   *scoringService.Service
	Validator *validator.Validate
}

func NewScoringController(db *gorm.DB) *ScoringController {
	return &ScoringController{
		Service:   scoringService.New(db),
		Validator: validator.New(),
	}
}

func mapScoringError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scoringService.ErrJobNotFound),
		errors.Is(err, scoringService.ErrConfigNotFound),
		errors.Is(err, scoringService.ErrRunNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// POST /v1/scoring/score-job
func (ctrl *ScoringController) ScoreJob(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ScoreJobRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.Service.ScoreJob(req.JobID, scoringService.ScoreOptions{
		TriggeredBy:          userID,
		Limit:                req.Limit,
		MinScore:             req.MinScore,
		IncludeInactiveUsers: req.IncludeInactiveUsers,
	})
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonOK(c, "scoring run completed", result)
}

/* =========================
   Runs
========================= */

// GET /v1/scoring/runs
func (ctrl *ScoringController) ListRuns(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var jobID *uuid.UUID
	if v := c.Query("jobId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid jobId")
		}
		jobID = &id
	}

	runs, total, err := ctrl.Service.ListRuns(jobID, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", runs, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GET /v1/scoring/runs/:id
func (ctrl *ScoringController) GetRun(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid run id")
	}
	run, err := ctrl.Service.GetRun(id)
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonOK(c, "ok", run)
}

/* =========================
   Configs
========================= */

// GET /v1/scoring/configs
func (ctrl *ScoringController) ListConfigs(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Service.ListConfigs(p.Offset, p.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GET /v1/scoring/configs/:id
func (ctrl *ScoringController) GetConfig(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid config id")
	}
	cfg, err := ctrl.Service.GetConfig(id)
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonOK(c, "ok", cfg)
}

// POST /v1/scoring/configs
func (ctrl *ScoringController) CreateConfig(c *fiber.Ctx) error {
	var req dto.CreateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	algorithm := ""
	if req.ScoringConfigAlgorithm != nil {
		algorithm = *req.ScoringConfigAlgorithm
	}
	cfg, err := ctrl.Service.CreateConfig(scoringService.ConfigInput{
		Name:        req.ScoringConfigName,
		Algorithm:   algorithm,
		Weights:     req.Weights.ToWeights(),
		Constraints: req.ScoringConfigConstraints,
	})
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonCreated(c, "config created", cfg)
}

// PATCH /v1/scoring/configs/:id
func (ctrl *ScoringController) UpdateConfig(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid config id")
	}

	var req dto.UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	upd := scoringService.ConfigUpdate{
		Name:        req.ScoringConfigName,
		Algorithm:   req.ScoringConfigAlgorithm,
		Constraints: req.ScoringConfigConstraints,
	}
	if req.Weights != nil {
		w := req.Weights.ToWeights()
		upd.Weights = &w
	}
	cfg, err := ctrl.Service.UpdateConfig(id, upd)
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonUpdated(c, "config updated", cfg)
}

// DELETE /v1/scoring/configs/:id
func (ctrl *ScoringController) DeleteConfig(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid config id")
	}
	if err := ctrl.Service.DeleteConfig(id); err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonDeleted(c, "config deleted", fiber.Map{"scoring_config_id": id})
}

// POST /v1/scoring/configs/:id/activate
func (ctrl *ScoringController) ActivateConfig(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid config id")
	}
	cfg, err := ctrl.Service.ActivateConfig(id)
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonUpdated(c, "config activated", cfg)
}

/* =========================
   Performance
========================= */

// GET /v1/scoring/performance/:developerId
func (ctrl *ScoringController) GetPerformance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("developerId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid developer id")
	}
	row, err := ctrl.Service.GetPerformance(id)
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /v1/scoring/performance/:developerId/recompute
func (ctrl *ScoringController) RecomputePerformance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("developerId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid developer id")
	}
	row, err := ctrl.Service.RecomputePerformance(id)
	if err != nil {
		return mapScoringError(c, err)
	}
	return helper.JsonUpdated(c, "performance recomputed", row)
}
