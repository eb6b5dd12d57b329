package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	NotificationTypePaymentSuccess       = "payment_success"
	NotificationTypeRegistrationComplete = "registration_complete"
	NotificationTypeGeneral              = "general"
)

type NotificationModel struct {
	NotificationID      uuid.UUID         `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID  uuid.UUID         `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`
	NotificationType    string            `gorm:"column:notification_type;size:40;not null;default:'general'" json:"notification_type"`
	NotificationTitle   string            `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage string            `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationMeta    datatypes.JSONMap `gorm:"column:notification_meta;type:jsonb" json:"notification_meta,omitempty"`
	NotificationTags    pq.StringArray    `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationRead    bool              `gorm:"column:notification_read;not null;default:false" json:"notification_read"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
