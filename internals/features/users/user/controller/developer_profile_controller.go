package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "talenthub_backend/internals/features/users/user/dto"
	userModel "talenthub_backend/internals/features/users/user/model"
	helper "talenthub_backend/internals/helpers"
)

// DeveloperProfileController handles the developer-owned sub-resources:
// skills, availability, education and portfolio.
type DeveloperProfileController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewDeveloperProfileController(db *gorm.DB) *DeveloperProfileController {
	return &DeveloperProfileController{DB: db, Validator: validator.New()}
}

/* =========================
   Skills
========================= */

// GET /v1/users/me/skills
func (ctrl *DeveloperProfileController) ListSkills(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var rows []userModel.DeveloperSkillModel
	if err := ctrl.DB.Where("developer_skill_user_id = ?", userID).
		Order("developer_skill_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /v1/users/me/skills
func (ctrl *DeveloperProfileController) CreateSkill(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var dup int64
	ctrl.DB.Model(&userModel.DeveloperSkillModel{}).
		Where("developer_skill_user_id = ? AND LOWER(developer_skill_name) = LOWER(?)", userID, req.DeveloperSkillName).
		Count(&dup)
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "skill already listed")
	}

	skill := req.ToModel(userID)
	if err := ctrl.DB.WithContext(c.Context()).Create(skill).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "skill added", skill)
}

// PATCH /v1/users/me/skills/:skillId
func (ctrl *DeveloperProfileController) UpdateSkill(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid skill id")
	}

	var req dto.UpdateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var skill userModel.DeveloperSkillModel
	if err := ctrl.DB.Where("developer_skill_id = ? AND developer_skill_user_id = ?", skillID, userID).
		First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "skill not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.DeveloperSkillName != nil {
		skill.DeveloperSkillName = *req.DeveloperSkillName
	}
	if req.DeveloperSkillLevel != nil {
		skill.DeveloperSkillLevel = *req.DeveloperSkillLevel
	}
	if req.DeveloperSkillYears != nil {
		skill.DeveloperSkillYears = req.DeveloperSkillYears
	}
	if err := ctrl.DB.Save(&skill).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "skill updated", skill)
}

// DELETE /v1/users/me/skills/:skillId
func (ctrl *DeveloperProfileController) DeleteSkill(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid skill id")
	}

	res := ctrl.DB.Where("developer_skill_id = ? AND developer_skill_user_id = ?", skillID, userID).
		Delete(&userModel.DeveloperSkillModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "skill not found")
	}
	return helper.JsonDeleted(c, "skill removed", fiber.Map{"developer_skill_id": skillID})
}

/* =========================
   Availability
========================= */

// GET /v1/users/me/availability
func (ctrl *DeveloperProfileController) GetAvailability(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var avail userModel.DeveloperAvailabilityModel
	if err := ctrl.DB.Where("developer_availability_user_id = ?", userID).First(&avail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "availability not set")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", avail)
}

// PUT /v1/users/me/availability — one row per developer, upsert on user id.
func (ctrl *DeveloperProfileController) UpsertAvailability(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpsertAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.DeveloperAvailabilityCommittedHours > req.DeveloperAvailabilityMaxHours {
		return helper.JsonValidationError(c, map[string][]string{
			"developer_availability_committed_hours": {"must not exceed max hours"},
		})
	}

	openToWork := true
	if req.DeveloperAvailabilityOpenToWork != nil {
		openToWork = *req.DeveloperAvailabilityOpenToWork
	}

	avail := userModel.DeveloperAvailabilityModel{
		DeveloperAvailabilityUserID:         userID,
		DeveloperAvailabilityMaxHours:       req.DeveloperAvailabilityMaxHours,
		DeveloperAvailabilityCommittedHours: req.DeveloperAvailabilityCommittedHours,
		DeveloperAvailabilityAvailableFrom:  req.DeveloperAvailabilityAvailableFrom,
		DeveloperAvailabilityOpenToWork:     openToWork,
	}
	err = ctrl.DB.WithContext(c.Context()).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "developer_availability_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"developer_availability_max_hours",
			"developer_availability_committed_hours",
			"developer_availability_available_from",
			"developer_availability_open_to_work",
			"developer_availability_updated_at",
		}),
	}).Create(&avail).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Re-read so the response carries the surviving row id.
	ctrl.DB.Where("developer_availability_user_id = ?", userID).First(&avail)
	return helper.JsonUpdated(c, "availability saved", avail)
}

/* =========================
   Education
========================= */

// POST /v1/users/me/education
func (ctrl *DeveloperProfileController) CreateEducation(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateEducationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.EducationEntryStartYear != nil && req.EducationEntryEndYear != nil &&
		*req.EducationEntryEndYear < *req.EducationEntryStartYear {
		return helper.JsonValidationError(c, map[string][]string{
			"education_entry_end_year": {"must not precede start year"},
		})
	}

	entry := userModel.EducationEntryModel{
		EducationEntryUserID:      userID,
		EducationEntryInstitution: req.EducationEntryInstitution,
		EducationEntryDegree:      req.EducationEntryDegree,
		EducationEntryField:       req.EducationEntryField,
		EducationEntryStartYear:   req.EducationEntryStartYear,
		EducationEntryEndYear:     req.EducationEntryEndYear,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "education added", entry)
}

// PATCH /v1/users/me/education/:entryId
func (ctrl *DeveloperProfileController) UpdateEducation(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	var req dto.UpdateEducationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var entry userModel.EducationEntryModel
	if err := ctrl.DB.Where("education_entry_id = ? AND education_entry_user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "education entry not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.EducationEntryInstitution != nil {
		entry.EducationEntryInstitution = *req.EducationEntryInstitution
	}
	if req.EducationEntryDegree != nil {
		entry.EducationEntryDegree = req.EducationEntryDegree
	}
	if req.EducationEntryField != nil {
		entry.EducationEntryField = req.EducationEntryField
	}
	if req.EducationEntryStartYear != nil {
		entry.EducationEntryStartYear = req.EducationEntryStartYear
	}
	if req.EducationEntryEndYear != nil {
		entry.EducationEntryEndYear = req.EducationEntryEndYear
	}
	if entry.EducationEntryStartYear != nil && entry.EducationEntryEndYear != nil &&
		*entry.EducationEntryEndYear < *entry.EducationEntryStartYear {
		return helper.JsonValidationError(c, map[string][]string{
			"education_entry_end_year": {"must not precede start year"},
		})
	}
	if err := ctrl.DB.Save(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "education updated", entry)
}

// DELETE /v1/users/me/education/:entryId
func (ctrl *DeveloperProfileController) DeleteEducation(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	res := ctrl.DB.Where("education_entry_id = ? AND education_entry_user_id = ?", entryID, userID).
		Delete(&userModel.EducationEntryModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "education entry not found")
	}
	return helper.JsonDeleted(c, "education removed", fiber.Map{"education_entry_id": entryID})
}

/* =========================
   Portfolio
========================= */

// POST /v1/users/me/portfolio
func (ctrl *DeveloperProfileController) CreatePortfolio(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	item := userModel.PortfolioItemModel{
		PortfolioItemUserID:  userID,
		PortfolioItemTitle:   req.PortfolioItemTitle,
		PortfolioItemURL:     req.PortfolioItemURL,
		PortfolioItemSummary: req.PortfolioItemSummary,
		PortfolioItemTags:    req.PortfolioItemTags,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&item).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "portfolio item added", item)
}

// PATCH /v1/users/me/portfolio/:itemId
func (ctrl *DeveloperProfileController) UpdatePortfolio(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req dto.UpdatePortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var item userModel.PortfolioItemModel
	if err := ctrl.DB.Where("portfolio_item_id = ? AND portfolio_item_user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "portfolio item not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.PortfolioItemTitle != nil {
		item.PortfolioItemTitle = *req.PortfolioItemTitle
	}
	if req.PortfolioItemURL != nil {
		item.PortfolioItemURL = req.PortfolioItemURL
	}
	if req.PortfolioItemSummary != nil {
		item.PortfolioItemSummary = req.PortfolioItemSummary
	}
	if len(req.PortfolioItemTags) > 0 {
		item.PortfolioItemTags = req.PortfolioItemTags
	}
	if err := ctrl.DB.Save(&item).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "portfolio item updated", item)
}

// DELETE /v1/users/me/portfolio/:itemId
func (ctrl *DeveloperProfileController) DeletePortfolio(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid item id")
	}

	res := ctrl.DB.Where("portfolio_item_id = ? AND portfolio_item_user_id = ?", itemID, userID).
		Delete(&userModel.PortfolioItemModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "portfolio item not found")
	}
	return helper.JsonDeleted(c, "portfolio item removed", fiber.Map{"portfolio_item_id": itemID})
}
