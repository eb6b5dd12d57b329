package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // user_name or email
	Password   string `json:"password" validate:"required"`
}

// UpdateProfileRequest patches the trainee profile. Pointer fields distinguish
// "not sent" from "clear".
type UpdateProfileRequest struct {
	FullName            *string       `json:"full_name,omitempty" validate:"omitempty,max=100"`
	PhoneNumber         *string       `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	AvatarURL           *string       `json:"avatar_url,omitempty" validate:"omitempty,url"`
	DateOfBirth         *time.Time    `json:"date_of_birth,omitempty"`
	Gender              *model.Gender `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Address             *string       `json:"address,omitempty" validate:"omitempty,max=300"`
	OnboardingCompleted *bool         `json:"onboarding_completed,omitempty"`
}

func (r *UpdateProfileRequest) Apply(p *model.TraineeProfileModel) {
	if r.FullName != nil {
		p.FullName = *r.FullName
	}
	if r.PhoneNumber != nil {
		p.PhoneNumber = *r.PhoneNumber
	}
	if r.AvatarURL != nil {
		p.AvatarURL = *r.AvatarURL
	}
	if r.DateOfBirth != nil {
		p.DateOfBirth = r.DateOfBirth
	}
	if r.Gender != nil {
		p.Gender = r.Gender
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.OnboardingCompleted != nil {
		p.OnboardingCompleted = *r.OnboardingCompleted
	}
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

type ProfileResponse struct {
	ID                  uuid.UUID     `json:"id"`
	UserID              uuid.UUID     `json:"user_id"`
	FullName            string        `json:"full_name"`
	PhoneNumber         string        `json:"phone_number"`
	AvatarURL           string        `json:"avatar_url"`
	DateOfBirth         *time.Time    `json:"date_of_birth,omitempty"`
	Gender              *model.Gender `json:"gender,omitempty"`
	Address             string        `json:"address"`
	OnboardingCompleted bool          `json:"onboarding_completed"`
	IsComplete          bool          `json:"is_complete"`
}

func FromUserModel(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

func FromProfileModel(p *model.TraineeProfileModel) ProfileResponse {
	return ProfileResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		FullName:            p.FullName,
		PhoneNumber:         p.PhoneNumber,
		AvatarURL:           p.AvatarURL,
		DateOfBirth:         p.DateOfBirth,
		Gender:              p.Gender,
		Address:             p.Address,
		OnboardingCompleted: p.OnboardingCompleted,
		IsComplete:          p.IsComplete(),
	}
}
