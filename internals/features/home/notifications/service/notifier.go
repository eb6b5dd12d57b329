package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/home/notifications/model"
)

// Notifier creates in-app notifications. Fire-and-forget: callers treat a
// failed create as a logged non-event, never as a request failure.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, typ, title, message string, meta map[string]any) error
}

type DBNotifier struct {
	DB *gorm.DB
}

func NewDBNotifier(db *gorm.DB) *DBNotifier {
	return &DBNotifier{DB: db}
}

func (n *DBNotifier) Notify(ctx context.Context, userID uuid.UUID, typ, title, message string, meta map[string]any) error {
	m := model.NotificationModel{
		NotificationUserID:  userID,
		NotificationType:    typ,
		NotificationTitle:   title,
		NotificationMessage: message,
		NotificationMeta:    datatypes.JSONMap(meta),
	}
	if err := n.DB.WithContext(ctx).Create(&m).Error; err != nil {
		log.Printf("[NOTIFY] create failed user=%s type=%s err=%v", userID, typ, err)
		return err
	}
	return nil
}
