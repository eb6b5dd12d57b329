package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TemplateKeyReceipt              = "payment_receipt"
	TemplateKeyRegistrationComplete = "registration_complete"
)

type EmailTemplateModel struct {
	TemplateID      uuid.UUID `gorm:"column:template_id;type:uuid;default:gen_random_uuid();primaryKey" json:"template_id"`
	TemplateKey     string    `gorm:"column:template_key;size:60;not null;uniqueIndex" json:"template_key"`
	TemplateSubject string    `gorm:"column:template_subject;size:255;not null" json:"template_subject"`
	TemplateHTML    string    `gorm:"column:template_html;type:text;not null" json:"template_html"`
	TemplateActive  bool      `gorm:"column:template_active;not null;default:true" json:"template_active"`

	CreatedAt time.Time      `gorm:"column:template_created_at;autoCreateTime" json:"template_created_at"`
	UpdatedAt time.Time      `gorm:"column:template_updated_at;autoUpdateTime" json:"template_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:template_deleted_at;index" json:"template_deleted_at,omitempty"`
}

func (EmailTemplateModel) TableName() string { return "email_templates" }

// ReceiptSettingModel is a single-row settings table controlling the
// post-settlement receipt email.
type ReceiptSettingModel struct {
	SettingID               uuid.UUID `gorm:"column:setting_id;type:uuid;default:gen_random_uuid();primaryKey" json:"setting_id"`
	SendEmailOnVerification bool      `gorm:"column:send_email_on_verification;not null;default:false" json:"send_email_on_verification"`
	ReceiptTemplateKey      string    `gorm:"column:receipt_template_key;size:60;not null;default:'payment_receipt'" json:"receipt_template_key"`

	CreatedAt time.Time `gorm:"column:setting_created_at;autoCreateTime" json:"setting_created_at"`
	UpdatedAt time.Time `gorm:"column:setting_updated_at;autoUpdateTime" json:"setting_updated_at"`
}

func (ReceiptSettingModel) TableName() string { return "receipt_settings" }
