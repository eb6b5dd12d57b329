package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type TraineeProfileModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName    string     `gorm:"size:100" json:"full_name"`
	PhoneNumber string     `gorm:"size:20" json:"phone_number"`
	AvatarURL   string     `gorm:"size:500" json:"avatar_url"`
	DateOfBirth *time.Time `json:"date_of_birth" time_format:"2006-01-02"`
	Gender      *Gender    `gorm:"size:10" json:"gender,omitempty"`
	Address     string     `gorm:"size:300" json:"address"`

	// Set by the profile form when the trainee finishes the onboarding step.
	// Completeness itself is always recomputed from the fields, see IsComplete.
	OnboardingCompleted bool `gorm:"not null;default:false" json:"onboarding_completed"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TraineeProfileModel) TableName() string { return "trainee_profiles" }

// IsComplete is the derived completeness predicate: every onboarding field must
// be present AND the stored flag must be set. The flag alone is never trusted.
func (p *TraineeProfileModel) IsComplete() bool {
	if p == nil {
		return false
	}
	if strings.TrimSpace(p.FullName) == "" ||
		strings.TrimSpace(p.PhoneNumber) == "" ||
		strings.TrimSpace(p.AvatarURL) == "" ||
		strings.TrimSpace(p.Address) == "" {
		return false
	}
	if p.DateOfBirth == nil {
		return false
	}
	if p.Gender == nil || strings.TrimSpace(string(*p.Gender)) == "" {
		return false
	}
	return p.OnboardingCompleted
}
