package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	dto "talenthub_backend/internals/features/teams/dto"
	teamModel "talenthub_backend/internals/features/teams/model"
	userModel "talenthub_backend/internals/features/users/user/model"
	helper "talenthub_backend/internals/helpers"
)

type TeamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{DB: db, Validator: validator.New()}
}

// POST /v1/teams
func (ctrl *TeamController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Every listed member must be an active developer.
	if len(req.MemberIDs) > 0 {
		var count int64
		if err := ctrl.DB.Model(&userModel.UserModel{}).
			Where("user_id IN ? AND user_role = ? AND user_is_active = ?",
				req.MemberIDs, constants.RoleDeveloper, true).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if count != int64(len(req.MemberIDs)) {
			return helper.JsonError(c, fiber.StatusNotFound, "one or more members are not active developers")
		}
	}

	team := req.ToModel(userID)
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		for _, memberID := range req.MemberIDs {
			member := teamModel.TeamMemberModel{
				TeamMemberTeamID: team.TeamID,
				TeamMemberUserID: memberID,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ctrl.DB.Preload("Members").Where("team_id = ?", team.TeamID).First(team)
	return helper.JsonCreated(c, "team created", team)
}

// GET /v1/teams
func (ctrl *TeamController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&teamModel.TeamModel{})
	if createdBy := c.Query("createdBy"); createdBy != "" {
		id, err := uuid.Parse(createdBy)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid createdBy")
		}
		q = q.Where("team_created_by = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []teamModel.TeamModel
	if err := q.Preload("Members").
		Order("team_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GET /v1/teams/:id
func (ctrl *TeamController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid team id")
	}
	var team teamModel.TeamModel
	if err := ctrl.DB.Preload("Members").Where("team_id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "team not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", team)
}

// PATCH /v1/teams/:id
func (ctrl *TeamController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid team id")
	}

	var req dto.UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "team not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.requireOwnership(c, &team); err != nil {
		return err
	}

	if req.TeamName != nil {
		team.TeamName = *req.TeamName
	}
	if req.TeamDescription != nil {
		team.TeamDescription = req.TeamDescription
	}
	if err := ctrl.DB.Save(&team).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "team updated", team)
}

// DELETE /v1/teams/:id — soft delete, members stay for audit.
func (ctrl *TeamController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid team id")
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "team not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.requireOwnership(c, &team); err != nil {
		return err
	}

	if err := ctrl.DB.Delete(&team).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "team deleted", fiber.Map{"team_id": id})
}

// POST /v1/teams/:id/members
func (ctrl *TeamController) AddMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid team id")
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "team not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.requireOwnership(c, &team); err != nil {
		return err
	}

	var dev userModel.UserModel
	if err := ctrl.DB.Where("user_id = ? AND user_role = ? AND user_is_active = ?",
		req.TeamMemberUserID, constants.RoleDeveloper, true).First(&dev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "developer not found or inactive")
	}

	var dup int64
	ctrl.DB.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ? AND team_member_user_id = ?", id, req.TeamMemberUserID).
		Count(&dup)
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "developer is already on the team")
	}

	member := teamModel.TeamMemberModel{
		TeamMemberTeamID: id,
		TeamMemberUserID: req.TeamMemberUserID,
		TeamMemberRole:   req.TeamMemberRole,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&member).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "member added", member)
}

// DELETE /v1/teams/:id/members/:userId
func (ctrl *TeamController) RemoveMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid team id")
	}
	memberUserID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "team not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.requireOwnership(c, &team); err != nil {
		return err
	}

	res := ctrl.DB.Where("team_member_team_id = ? AND team_member_user_id = ?", id, memberUserID).
		Delete(&teamModel.TeamMemberModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "member not found")
	}
	return helper.JsonDeleted(c, "member removed", fiber.Map{
		"team_id":             id,
		"team_member_user_id": memberUserID,
	})
}

func (ctrl *TeamController) requireOwnership(c *fiber.Ctx, team *teamModel.TeamModel) error {
	if helper.IsAdmin(c) {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if team.TeamCreatedBy != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "team belongs to another user")
	}
	return nil
}
