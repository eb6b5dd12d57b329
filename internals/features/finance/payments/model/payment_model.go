package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const (
	PaymentTypeApplicationFee  = "application_fee"
	PaymentTypeRegistrationFee = "registration_fee"
)

const (
	PaymentProviderPaystack    = "paystack"
	PaymentProviderFlutterwave = "flutterwave"
)

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID            uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentUserID        uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentApplicationID uuid.UUID `gorm:"column:payment_application_id;type:uuid;not null;index" json:"payment_application_id"`

	PaymentAmountKobo int64  `gorm:"column:payment_amount_kobo;not null;check:payment_amount_kobo >= 0" json:"payment_amount_kobo"`
	PaymentCurrency   string `gorm:"column:payment_currency;type:varchar(8);not null;default:NGN" json:"payment_currency"`

	PaymentStatus   string `gorm:"column:payment_status;size:20;not null;default:'pending'" json:"payment_status"`
	PaymentType     string `gorm:"column:payment_type;size:30;not null" json:"payment_type"`
	PaymentProvider string `gorm:"column:payment_provider;size:30;not null" json:"payment_provider"`

	// Our reference, generated at initialization and handed to the provider.
	PaymentReference string `gorm:"column:payment_reference;size:60;not null;uniqueIndex" json:"payment_reference"`
	// Provider-side reference, stored on completion.
	PaymentProviderReference *string `gorm:"column:payment_provider_reference;size:100" json:"payment_provider_reference,omitempty"`

	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	PaymentPaidAt *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) IsCompleted() bool {
	return p.PaymentStatus == PaymentStatusCompleted
}

func (p *PaymentModel) IsOpen() bool {
	return p.PaymentStatus == PaymentStatusPending
}
