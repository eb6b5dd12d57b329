package model

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptModel is the immutable proof of a completed payment. Exactly one row
// per completed payment; never updated after creation.
type ReceiptModel struct {
	ReceiptID         uuid.UUID `gorm:"column:receipt_id;type:uuid;default:gen_random_uuid();primaryKey" json:"receipt_id"`
	ReceiptPaymentID  uuid.UUID `gorm:"column:receipt_payment_id;type:uuid;not null;uniqueIndex" json:"receipt_payment_id"`
	ReceiptNumber     string    `gorm:"column:receipt_number;size:40;not null;uniqueIndex" json:"receipt_number"`
	ReceiptAmountKobo int64     `gorm:"column:receipt_amount_kobo;not null" json:"receipt_amount_kobo"`

	ReceiptCreatedAt time.Time `gorm:"column:receipt_created_at;autoCreateTime" json:"receipt_created_at"`
}

func (ReceiptModel) TableName() string { return "receipts" }
