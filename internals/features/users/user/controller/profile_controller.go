package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "talenthub_backend/internals/features/users/user/dto"
	userModel "talenthub_backend/internals/features/users/user/model"
	helper "talenthub_backend/internals/helpers"
)

type ProfileController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db, Validator: validator.New()}
}

func (ctrl *ProfileController) loadProfile(userID uuid.UUID) (*dto.ProfileResponse, error) {
	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	out := dto.ProfileResponse{User: &user}
	if err := ctrl.DB.Where("developer_skill_user_id = ?", userID).Find(&out.Skills).Error; err != nil {
		return nil, err
	}

	var avail userModel.DeveloperAvailabilityModel
	err := ctrl.DB.Where("developer_availability_user_id = ?", userID).First(&avail).Error
	switch {
	case err == nil:
		out.Availability = &avail
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := ctrl.DB.Where("education_entry_user_id = ?", userID).
		Order("education_entry_start_year DESC").Find(&out.Education).Error; err != nil {
		return nil, err
	}
	if err := ctrl.DB.Where("portfolio_item_user_id = ?", userID).
		Order("portfolio_item_created_at DESC").Find(&out.Portfolio).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GET /v1/users/me
func (ctrl *ProfileController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	profile, err := ctrl.loadProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", profile)
}

// PATCH /v1/users/me
func (ctrl *ProfileController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]any{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.UserHeadline != nil {
		updates["user_headline"] = *req.UserHeadline
	}
	if req.UserBio != nil {
		updates["user_bio"] = *req.UserBio
	}
	if len(updates) > 0 {
		if err := ctrl.DB.Model(&userModel.UserModel{}).
			Where("user_id = ?", userID).
			Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	profile, err := ctrl.loadProfile(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "profile updated", profile)
}

// GET /v1/users/:id — admin/client view of a developer profile.
func (ctrl *ProfileController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}
	profile, err := ctrl.loadProfile(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", profile)
}

// GET /v1/users — admin list with paging.
func (ctrl *ProfileController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&userModel.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("user_role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []userModel.UserModel
	if err := q.Order("user_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}
