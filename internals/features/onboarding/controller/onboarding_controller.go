package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appModel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/model"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/onboarding/service"
	userModel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/model"
	helper "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/helpers"
	authmw "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/middlewares/auth"
)

type OnboardingController struct {
	DB *gorm.DB
}

func NewOnboardingController(db *gorm.DB) *OnboardingController {
	return &OnboardingController{DB: db}
}

func (h *OnboardingController) RegisterRoutes(r fiber.Router) {
	r.Get("/onboarding/status", h.GetStatus)
}

// GET /api/u/onboarding/status
//
// Reads the profile and latest application snapshots and resolves the current
// onboarding stage. An unauthenticated/unloaded context resolves to the
// complete_profile stage with all flags false rather than an error.
func (h *OnboardingController) GetStatus(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)
	if userID == uuid.Nil {
		return helper.Success(c, "Onboarding status", service.Unauthenticated())
	}

	var profile *userModel.TraineeProfileModel
	var p userModel.TraineeProfileModel
	err := h.DB.Where("user_id = ?", userID).First(&p).Error
	switch {
	case err == nil:
		profile = &p
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = nil
	default:
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	app, err := appModel.LatestForUser(h.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Onboarding status", service.Resolve(profile, app))
}
