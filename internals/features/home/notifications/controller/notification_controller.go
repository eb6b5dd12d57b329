package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/notifications/model"
	authmw "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/middlewares/auth"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func (h *NotificationController) RegisterRoutes(r fiber.Router) {
	gr := r.Group("/notifications")
	gr.Get("/", h.ListMine)
	gr.Post("/:id/read", h.MarkRead)
}

// GET /api/u/notifications?unread=true
func (h *NotificationController) ListMine(c *fiber.Ctx) error {
	userID := authmw.UserUUID(c)

	db := h.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if c.Query("unread") == "true" {
		db = db.Where("notification_read = FALSE")
	}

	var rows []model.NotificationModel
	if err := db.Order("notification_created_at DESC").Limit(100).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	userID := authmw.UserUUID(c)

	var m model.NotificationModel
	if err := h.DB.First(&m, "notification_id = ? AND notification_user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "notification not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	m.NotificationRead = true
	if err := h.DB.Save(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(m)
}
