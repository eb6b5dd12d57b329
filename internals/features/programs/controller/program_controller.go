package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/programs/dto"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/programs/model"
)

/* =======================================================================
   Controller
======================================================================= */

type ProgramController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewProgramController(db *gorm.DB) *ProgramController {
	return &ProgramController{DB: db, Validate: validator.New()}
}

func (h *ProgramController) RegisterPublicRoutes(r fiber.Router) {
	gr := r.Group("/programs")
	gr.Get("/", h.ListPrograms) // GET /programs?q=&active=&page=&limit=
	gr.Get("/:id", h.GetByID)   // GET /programs/:id
}

func (h *ProgramController) RegisterAdminRoutes(r fiber.Router) {
	gr := r.Group("/programs")
	gr.Post("/", h.CreateProgram)
	gr.Patch("/:id", h.PatchProgram)
	gr.Delete("/:id", h.DeleteProgram)
}

/* =======================================================================
   List (filter + pagination)
======================================================================= */

func (h *ProgramController) ListPrograms(c *fiber.Ctx) error {
	db := h.DB.Model(&model.ProgramModel{})

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		db = db.Where("program_title ILIKE ? OR program_slug ILIKE ?", like, like)
	}
	if a := strings.TrimSpace(c.Query("active")); a != "" {
		if b, err := strconv.ParseBool(a); err == nil {
			db = db.Where("program_is_active = ?", b)
		} else {
			return fiber.NewError(fiber.StatusBadRequest, "invalid active (use true/false)")
		}
	}

	page := clampInt(queryInt(c, "page", 1), 1, 1_000_000)
	limit := clampInt(queryInt(c, "limit", 20), 1, 200)
	offset := (page - 1) * limit

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ProgramModel
	if err := db.Order("program_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.ProgramResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromProgramModel(&rows[i]))
	}

	return c.JSON(fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"data":  out,
	})
}

/* =======================================================================
   Detail
======================================================================= */

func (h *ProgramController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var m model.ProgramModel
	if err := h.DB.First(&m, "program_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dto.FromProgramModel(&m))
}

/* =======================================================================
   Create / Patch / Delete (admin)
======================================================================= */

func (h *ProgramController) CreateProgram(c *fiber.Ctx) error {
	var req dto.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return fiber.NewError(fiber.StatusConflict, "duplicated program_slug")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromProgramModel(m))
}

func (h *ProgramController) PatchProgram(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var m model.ProgramModel
	if err := h.DB.First(&m, "program_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var patch dto.UpdateProgramRequest
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validate.Struct(patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	patch.Apply(&m)

	if err := h.DB.Save(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromProgramModel(&m))
}

func (h *ProgramController) DeleteProgram(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.DB.Delete(&model.ProgramModel{}, "program_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
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
