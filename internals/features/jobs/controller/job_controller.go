package controller

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	dto "talenthub_backend/internals/features/jobs/dto"
	jobModel "talenthub_backend/internals/features/jobs/model"
	helper "talenthub_backend/internals/helpers"
)

type JobController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewJobController(db *gorm.DB) *JobController {
	return &JobController{DB: db, Validator: validator.New()}
}

// POST /v1/jobs
func (ctrl *JobController) Create(c *fiber.Ctx) error {
	clientID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	job, err := req.ToModel(clientID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid skills or tags payload")
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(job).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "job created", job)
}

// GET /v1/jobs
func (ctrl *JobController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&jobModel.JobModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("job_status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		q = q.Where("job_priority = ?", priority)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid clientId")
		}
		q = q.Where("job_client_id = ?", id)
	}

	// Clients only see their own jobs; admins and developers see all.
	role := helper.GetRoleFromToken(c)
	if role == constants.RoleClient {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		q = q.Where("job_client_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []jobModel.JobModel
	if err := q.Order("job_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GET /v1/jobs/:id
func (ctrl *JobController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid job id")
	}
	var job jobModel.JobModel
	if err := ctrl.DB.Where("job_id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "job not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", job)
}

// PATCH /v1/jobs/:id
func (ctrl *JobController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid job id")
	}

	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var job jobModel.JobModel
	if err := ctrl.DB.Where("job_id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "job not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.requireOwnership(c, &job); err != nil {
		return err
	}

	if req.JobTitle != nil {
		job.JobTitle = *req.JobTitle
	}
	if req.JobDescription != nil {
		job.JobDescription = req.JobDescription
	}
	if req.JobPriority != nil {
		job.JobPriority = *req.JobPriority
	}
	if req.JobStatus != nil {
		job.JobStatus = *req.JobStatus
	}
	if req.JobEstimatedHours != nil {
		job.JobEstimatedHours = req.JobEstimatedHours
	}
	if req.JobTags != nil {
		raw, err := sonic.Marshal(req.JobTags)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid tags payload")
		}
		job.JobTags = datatypes.JSON(raw)
	}
	if req.JobRequiredSkills != nil {
		skills := make([]jobModel.RequiredSkill, 0, len(req.JobRequiredSkills))
		for _, s := range req.JobRequiredSkills {
			weight := s.Weight
			if weight == 0 {
				weight = 1
			}
			skills = append(skills, jobModel.RequiredSkill{
				Skill:    s.Skill,
				Level:    s.Level,
				Weight:   weight,
				Required: s.Required,
			})
		}
		raw, err := sonic.Marshal(skills)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid skills payload")
		}
		job.JobRequiredSkills = datatypes.JSON(raw)
	}

	if err := ctrl.DB.Save(&job).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "job updated", job)
}

// DELETE /v1/jobs/:id — soft delete.
func (ctrl *JobController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid job id")
	}

	var job jobModel.JobModel
	if err := ctrl.DB.Where("job_id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "job not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.requireOwnership(c, &job); err != nil {
		return err
	}

	if err := ctrl.DB.Delete(&job).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "job deleted", fiber.Map{"job_id": id})
}

// requireOwnership writes the 403 response itself and returns it as error.
func (ctrl *JobController) requireOwnership(c *fiber.Ctx, job *jobModel.JobModel) error {
	if helper.IsAdmin(c) {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if job.JobClientID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "job belongs to another client")
	}
	return nil
}
