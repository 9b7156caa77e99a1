package dto

import (
	"strings"

	userModel "talenthub_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	UserName     string  `json:"user_name" validate:"required,min=2,max=120"`
	UserEmail    string  `json:"user_email" validate:"required,email,max=255"`
	UserPassword string  `json:"user_password" validate:"required,min=8,max=72"`
	UserRole     *string `json:"user_role" validate:"omitempty,oneof=CLIENT DEVELOPER"`
	UserHeadline *string `json:"user_headline" validate:"omitempty,max=180"`
}

func (r *RegisterRequest) ToModel(passwordHash string) *userModel.UserModel {
	role := "DEVELOPER"
	if r.UserRole != nil {
		role = *r.UserRole
	}
	return &userModel.UserModel{
		UserName:         strings.TrimSpace(r.UserName),
		UserEmail:        strings.ToLower(strings.TrimSpace(r.UserEmail)),
		UserPasswordHash: passwordHash,
		UserRole:         role,
		UserIsActive:     true,
		UserHeadline:     r.UserHeadline,
	}
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresIn   int64                `json:"expires_in"`
	User        *userModel.UserModel `json:"user"`
}
