package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/dto"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/model"
	helper "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/helpers"
	authmw "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/middlewares/auth"
)

type ProfileController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db, Validate: validator.New()}
}

// GET /api/u/profile
func (ctl *ProfileController) GetMe(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)

	var p model.TraineeProfileModel
	err := ctl.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// no profile yet: return an empty one so the form can prefill
			return helper.Success(c, "Profile", dto.FromProfileModel(&model.TraineeProfileModel{UserID: userID}))
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Profile", dto.FromProfileModel(&p))
}

// PATCH /api/u/profile, upserts the trainee profile.
func (ctl *ProfileController) UpdateMe(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var p model.TraineeProfileModel
	err := ctl.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	p.UserID = userID

	req.Apply(&p)

	if err := ctl.DB.Save(&p).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Could not save profile")
	}

	return helper.Success(c, "Profile updated", dto.FromProfileModel(&p))
}
