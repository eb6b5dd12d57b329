package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

/* ===================== Model ===================== */

type ApplicationModel struct {
	ApplicationID        uuid.UUID `gorm:"column:application_id;type:uuid;default:gen_random_uuid();primaryKey" json:"application_id"`
	ApplicationUserID    uuid.UUID `gorm:"column:application_user_id;type:uuid;not null;index" json:"application_user_id"`
	ApplicationProgramID uuid.UUID `gorm:"column:application_program_id;type:uuid;not null" json:"application_program_id"`

	ApplicationStatus    string `gorm:"column:application_status;size:20;not null;default:'pending'" json:"application_status"`
	ApplicationSubmitted bool   `gorm:"column:application_submitted;not null;default:false" json:"application_submitted"`

	ApplicationFeePaid  bool `gorm:"column:application_fee_paid;not null;default:false" json:"application_fee_paid"`
	RegistrationFeePaid bool `gorm:"column:registration_fee_paid;not null;default:false" json:"registration_fee_paid"`

	// Assigned exactly once, on the first successful registration-fee settlement.
	ApplicationRegistrationNumber *string `gorm:"column:application_registration_number;size:40;uniqueIndex" json:"application_registration_number,omitempty"`

	ApplicationRejectionReason *string `gorm:"column:application_rejection_reason;size:500" json:"application_rejection_reason,omitempty"`

	CreatedAt time.Time      `gorm:"column:application_created_at;autoCreateTime" json:"application_created_at"`
	UpdatedAt time.Time      `gorm:"column:application_updated_at;autoUpdateTime" json:"application_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:application_deleted_at;index" json:"application_deleted_at,omitempty"`
}

func (ApplicationModel) TableName() string { return "applications" }

func (a *ApplicationModel) IsApproved() bool {
	return a.ApplicationStatus == ApplicationStatusApproved
}

func (a *ApplicationModel) IsRejected() bool {
	return a.ApplicationStatus == ApplicationStatusRejected
}

/* ===================== Queries ===================== */

// LatestForUser fetches the trainee's most recent application, or nil when
// none exists. Resolution always works off this row.
func LatestForUser(db *gorm.DB, userID uuid.UUID) (*ApplicationModel, error) {
	var a ApplicationModel
	err := db.
		Where("application_user_id = ?", userID).
		Order("application_created_at DESC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// AssignRegistrationNumber writes the registration number only when none is
// set yet. The WHERE guard makes the assignment at-most-once even when two
// settlements race; the caller checks the returned flag before incrementing
// the program counter.
func AssignRegistrationNumber(db *gorm.DB, applicationID uuid.UUID, regNumber string) (bool, error) {
	res := db.Model(&ApplicationModel{}).
		Where("application_id = ? AND application_registration_number IS NULL", applicationID).
		UpdateColumn("application_registration_number", regNumber)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
