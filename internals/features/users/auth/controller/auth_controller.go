package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"talenthub_backend/internals/configs"
	dto "talenthub_backend/internals/features/users/auth/dto"
	userModel "talenthub_backend/internals/features/users/user/model"
	helper "talenthub_backend/internals/helpers"
)

const accessTokenTTL = 2 * time.Hour

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

// POST /v1/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	var existing userModel.UserModel
	if err := ctrl.DB.Where("user_email = ?", email).First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "password hash failed")
	}

	user := req.ToModel(string(hash))
	if err := ctrl.DB.WithContext(c.Context()).Create(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "registered", user)
}

// POST /v1/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	if err := ctrl.DB.Where("user_email = ?", email).First(&user).Error; err != nil {
		// Same answer for unknown email and bad password.
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(req.UserPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account deactivated")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "token signing failed")
	}

	ctrl.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_last_active_at", now)

	return helper.JsonOK(c, "logged in", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
		User:        &user,
	})
}

// GET /v1/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "user not found")
	}
	return helper.JsonOK(c, "ok", user)
}
