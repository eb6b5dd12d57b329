package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/programs/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type CreateProgramRequest struct {
	ProgramTitle               string `json:"program_title" validate:"required,max=150"`
	ProgramSlug                string `json:"program_slug" validate:"required,max=160"`
	ProgramDescription         string `json:"program_description,omitempty"`
	ProgramApplicationFeeKobo  int64  `json:"program_application_fee_kobo" validate:"gte=0"`
	ProgramRegistrationFeeKobo int64  `json:"program_registration_fee_kobo" validate:"gte=0"`
	ProgramCapacity            *int   `json:"program_capacity,omitempty" validate:"omitempty,gt=0"`
}

func (r *CreateProgramRequest) ToModel() *model.ProgramModel {
	return &model.ProgramModel{
		ProgramTitle:               strings.TrimSpace(r.ProgramTitle),
		ProgramSlug:                strings.ToLower(strings.TrimSpace(r.ProgramSlug)),
		ProgramDescription:         r.ProgramDescription,
		ProgramApplicationFeeKobo:  r.ProgramApplicationFeeKobo,
		ProgramRegistrationFeeKobo: r.ProgramRegistrationFeeKobo,
		ProgramCapacity:            r.ProgramCapacity,
		ProgramIsActive:            true,
	}
}

type UpdateProgramRequest struct {
	ProgramTitle               *string `json:"program_title,omitempty" validate:"omitempty,max=150"`
	ProgramDescription         *string `json:"program_description,omitempty"`
	ProgramApplicationFeeKobo  *int64  `json:"program_application_fee_kobo,omitempty" validate:"omitempty,gte=0"`
	ProgramRegistrationFeeKobo *int64  `json:"program_registration_fee_kobo,omitempty" validate:"omitempty,gte=0"`
	ProgramCapacity            *int    `json:"program_capacity,omitempty" validate:"omitempty,gt=0"`
	ProgramIsActive            *bool   `json:"program_is_active,omitempty"`
}

func (r *UpdateProgramRequest) Apply(m *model.ProgramModel) {
	if r.ProgramTitle != nil {
		m.ProgramTitle = strings.TrimSpace(*r.ProgramTitle)
	}
	if r.ProgramDescription != nil {
		m.ProgramDescription = *r.ProgramDescription
	}
	if r.ProgramApplicationFeeKobo != nil {
		m.ProgramApplicationFeeKobo = *r.ProgramApplicationFeeKobo
	}
	if r.ProgramRegistrationFeeKobo != nil {
		m.ProgramRegistrationFeeKobo = *r.ProgramRegistrationFeeKobo
	}
	if r.ProgramCapacity != nil {
		m.ProgramCapacity = r.ProgramCapacity
	}
	if r.ProgramIsActive != nil {
		m.ProgramIsActive = *r.ProgramIsActive
	}
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type ProgramResponse struct {
	ProgramID                  uuid.UUID `json:"program_id"`
	ProgramTitle               string    `json:"program_title"`
	ProgramSlug                string    `json:"program_slug"`
	ProgramDescription         string    `json:"program_description"`
	ProgramApplicationFeeKobo  int64     `json:"program_application_fee_kobo"`
	ProgramRegistrationFeeKobo int64     `json:"program_registration_fee_kobo"`
	ProgramEnrolledCount       int64     `json:"program_enrolled_count"`
	ProgramCapacity            *int      `json:"program_capacity,omitempty"`
	ProgramIsActive            bool      `json:"program_is_active"`
	CreatedAt                  time.Time `json:"program_created_at"`
}

func FromProgramModel(m *model.ProgramModel) *ProgramResponse {
	return &ProgramResponse{
		ProgramID:                  m.ProgramID,
		ProgramTitle:               m.ProgramTitle,
		ProgramSlug:                m.ProgramSlug,
		ProgramDescription:         m.ProgramDescription,
		ProgramApplicationFeeKobo:  m.ProgramApplicationFeeKobo,
		ProgramRegistrationFeeKobo: m.ProgramRegistrationFeeKobo,
		ProgramEnrolledCount:       m.ProgramEnrolledCount,
		ProgramCapacity:            m.ProgramCapacity,
		ProgramIsActive:            m.ProgramIsActive,
		CreatedAt:                  m.CreatedAt,
	}
}
