package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/dto"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/model"
	programModel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/programs/model"
	authmw "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/middlewares/auth"
)

/* =======================================================================
   Controller
======================================================================= */

type ApplicationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{DB: db, Validate: validator.New()}
}

func (h *ApplicationController) RegisterTraineeRoutes(r fiber.Router) {
	gr := r.Group("/applications")
	gr.Get("/me", h.GetMine)          // latest application for the signed-in trainee
	gr.Post("/", h.CreateApplication) // program selection
	gr.Post("/:id/submit", h.SubmitApplication)
	gr.Post("/:id/resubmit", h.ResubmitApplication)
}

func (h *ApplicationController) RegisterAdminRoutes(r fiber.Router) {
	gr := r.Group("/applications")
	gr.Get("/", h.ListApplications) // ?status=&program_id=&page=&limit=
	gr.Post("/:id/decide", h.DecideApplication)
}

/* =======================================================================
   Trainee
======================================================================= */

func (h *ApplicationController) GetMine(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)

	app, err := model.LatestForUser(h.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if app == nil {
		return fiber.NewError(fiber.StatusNotFound, "no application yet")
	}
	return c.JSON(dto.FromApplicationModel(app))
}

// CreateApplication records the trainee's program selection. The actual
// application-fee charge is initialized separately through the payments flow.
func (h *ApplicationController) CreateApplication(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)
	if userID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var prog programModel.ProgramModel
	if err := h.DB.First(&prog, "program_id = ? AND program_is_active = TRUE", req.ApplicationProgramID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "program not found or inactive")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	m := &model.ApplicationModel{
		ApplicationUserID:    userID,
		ApplicationProgramID: prog.ProgramID,
		ApplicationStatus:    model.ApplicationStatusPending,
		// fee waived programs skip straight past the payment gate
		ApplicationFeePaid: prog.ProgramApplicationFeeKobo == 0,
	}
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromApplicationModel(m))
}

func (h *ApplicationController) SubmitApplication(c *fiber.Ctx) error {
	m, err := h.ownedApplication(c)
	if err != nil {
		return err
	}

	if m.ApplicationSubmitted {
		return c.JSON(dto.FromApplicationModel(m))
	}
	if !m.ApplicationFeePaid {
		return fiber.NewError(fiber.StatusConflict, "application fee not paid")
	}

	m.ApplicationSubmitted = true
	m.ApplicationStatus = model.ApplicationStatusPending
	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromApplicationModel(m))
}

// ResubmitApplication reopens a rejected application for another review pass.
func (h *ApplicationController) ResubmitApplication(c *fiber.Ctx) error {
	m, err := h.ownedApplication(c)
	if err != nil {
		return err
	}

	if m.ApplicationStatus != model.ApplicationStatusRejected {
		return fiber.NewError(fiber.StatusConflict, "only rejected applications can be resubmitted")
	}

	m.ApplicationStatus = model.ApplicationStatusPending
	m.ApplicationRejectionReason = nil
	m.ApplicationSubmitted = true
	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromApplicationModel(m))
}

func (h *ApplicationController) ownedApplication(c *fiber.Ctx) (*model.ApplicationModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	userID := authmw.UserUUID(c)

	var m model.ApplicationModel
	if err := h.DB.First(&m, "application_id = ? AND application_user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &m, nil
}

/* =======================================================================
   Admin
======================================================================= */

func (h *ApplicationController) ListApplications(c *fiber.Ctx) error {
	db := h.DB.Model(&model.ApplicationModel{})

	if s := strings.TrimSpace(c.Query("status")); s != "" {
		db = db.Where("application_status = ?", strings.ToLower(s))
	}
	if pid := strings.TrimSpace(c.Query("program_id")); pid != "" {
		if id, err := uuid.Parse(pid); err == nil {
			db = db.Where("application_program_id = ?", id)
		} else {
			return fiber.NewError(fiber.StatusBadRequest, "invalid program_id")
		}
	}
	if sub := strings.TrimSpace(c.Query("submitted")); sub != "" {
		if b, err := strconv.ParseBool(sub); err == nil {
			db = db.Where("application_submitted = ?", b)
		} else {
			return fiber.NewError(fiber.StatusBadRequest, "invalid submitted (use true/false)")
		}
	}

	page := clampInt(queryInt(c, "page", 1), 1, 1_000_000)
	limit := clampInt(queryInt(c, "limit", 20), 1, 200)
	offset := (page - 1) * limit

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ApplicationModel
	if err := db.Order("application_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.ApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromApplicationModel(&rows[i]))
	}

	return c.JSON(fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"data":  out,
	})
}

func (h *ApplicationController) DecideApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req dto.DecideApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var m model.ApplicationModel
	if err := h.DB.First(&m, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if !m.ApplicationSubmitted {
		return fiber.NewError(fiber.StatusConflict, "application not submitted yet")
	}

	m.ApplicationStatus = req.Decision
	if req.Decision == model.ApplicationStatusRejected {
		m.ApplicationRejectionReason = req.RejectionReason
	} else {
		m.ApplicationRejectionReason = nil
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromApplicationModel(&m))
}

/* =======================================================================
   Helpers
======================================================================= */

func queryInt(c *fiber.Ctx, key string, def int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
