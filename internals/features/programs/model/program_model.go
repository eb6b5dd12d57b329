package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramModel struct {
	ProgramID          uuid.UUID `gorm:"column:program_id;type:uuid;default:gen_random_uuid();primaryKey" json:"program_id"`
	ProgramTitle       string    `gorm:"column:program_title;size:150;not null" json:"program_title"`
	ProgramSlug        string    `gorm:"column:program_slug;size:160;not null;uniqueIndex" json:"program_slug"`
	ProgramDescription string    `gorm:"column:program_description;type:text" json:"program_description"`

	// Fees in kobo. Zero means the fee is waived for this program.
	ProgramApplicationFeeKobo  int64 `gorm:"column:program_application_fee_kobo;not null;default:0;check:program_application_fee_kobo >= 0" json:"program_application_fee_kobo"`
	ProgramRegistrationFeeKobo int64 `gorm:"column:program_registration_fee_kobo;not null;default:0;check:program_registration_fee_kobo >= 0" json:"program_registration_fee_kobo"`

	ProgramEnrolledCount int64 `gorm:"column:program_enrolled_count;not null;default:0" json:"program_enrolled_count"`
	ProgramCapacity      *int  `gorm:"column:program_capacity" json:"program_capacity,omitempty"`
	ProgramIsActive      bool  `gorm:"column:program_is_active;not null;default:true" json:"program_is_active"`

	CreatedAt time.Time      `gorm:"column:program_created_at;autoCreateTime" json:"program_created_at"`
	UpdatedAt time.Time      `gorm:"column:program_updated_at;autoUpdateTime" json:"program_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:program_deleted_at;index" json:"program_deleted_at,omitempty"`
}

func (ProgramModel) TableName() string { return "programs" }

// IncrementEnrolledCount bumps the counter server-side so concurrent
// registrations never lose an update. Callers guard the at-most-once rule
// (increment only together with first registration-number assignment).
func IncrementEnrolledCount(db *gorm.DB, programID uuid.UUID) error {
	return db.Model(&ProgramModel{}).
		Where("program_id = ?", programID).
		UpdateColumn("program_enrolled_count", gorm.Expr("program_enrolled_count + 1")).Error
}
