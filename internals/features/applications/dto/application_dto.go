package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type CreateApplicationRequest struct {
	ApplicationProgramID uuid.UUID `json:"application_program_id" validate:"required"`
}

type DecideApplicationRequest struct {
	Decision        string  `json:"decision" validate:"required,oneof=approved rejected"`
	RejectionReason *string `json:"rejection_reason,omitempty" validate:"omitempty,max=500"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type ApplicationResponse struct {
	ApplicationID        uuid.UUID `json:"application_id"`
	ApplicationUserID    uuid.UUID `json:"application_user_id"`
	ApplicationProgramID uuid.UUID `json:"application_program_id"`

	ApplicationStatus    string `json:"application_status"`
	ApplicationSubmitted bool   `json:"application_submitted"`
	ApplicationFeePaid   bool   `json:"application_fee_paid"`
	RegistrationFeePaid  bool   `json:"registration_fee_paid"`

	ApplicationRegistrationNumber *string `json:"application_registration_number,omitempty"`
	ApplicationRejectionReason    *string `json:"application_rejection_reason,omitempty"`

	CreatedAt time.Time `json:"application_created_at"`
	UpdatedAt time.Time `json:"application_updated_at"`
}

func FromApplicationModel(m *model.ApplicationModel) *ApplicationResponse {
	return &ApplicationResponse{
		ApplicationID:                 m.ApplicationID,
		ApplicationUserID:             m.ApplicationUserID,
		ApplicationProgramID:          m.ApplicationProgramID,
		ApplicationStatus:             m.ApplicationStatus,
		ApplicationSubmitted:          m.ApplicationSubmitted,
		ApplicationFeePaid:            m.ApplicationFeePaid,
		RegistrationFeePaid:           m.RegistrationFeePaid,
		ApplicationRegistrationNumber: m.ApplicationRegistrationNumber,
		ApplicationRejectionReason:    m.ApplicationRejectionReason,
		CreatedAt:                     m.CreatedAt,
		UpdatedAt:                     m.UpdatedAt,
	}
}
