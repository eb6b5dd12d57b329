package service

import (
	appModel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/applications/model"
	userModel "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/model"
)

// Step is the single discrete onboarding stage a trainee is in.
type Step string

const (
	StepSelectProgram      Step = "select_program"
	StepCompleteProfile    Step = "complete_profile"
	StepFillApplication    Step = "fill_application"
	StepPendingApproval    Step = "pending_approval"
	StepPayRegistrationFee Step = "pay_registration_fee"
	StepFullyEnrolled      Step = "fully_enrolled"
	StepRejected           Step = "rejected"
)

type Status struct {
	CurrentStep        Step `json:"current_step"`
	CanAccessDashboard bool `json:"can_access_dashboard"`
	CanAccessIDCard    bool `json:"can_access_id_card"`
}

// Unauthenticated is the status served when no trainee context exists: the
// earliest profile stage with every access flag off. Not an error.
func Unauthenticated() Status {
	return Status{CurrentStep: StepCompleteProfile}
}

// Resolve derives the onboarding stage from the profile and the trainee's most
// recent application. Pure and total: missing data maps to the earliest stage.
//
// The rules are ordered by priority and the first match wins; the order is
// load-bearing and must not be rearranged.
func Resolve(profile *userModel.TraineeProfileModel, app *appModel.ApplicationModel) Status {
	step := resolveStep(profile, app)

	st := Status{CurrentStep: step}
	if step == StepFullyEnrolled {
		st.CanAccessDashboard = true
		st.CanAccessIDCard = app != nil && app.ApplicationRegistrationNumber != nil
	}
	return st
}

func resolveStep(profile *userModel.TraineeProfileModel, app *appModel.ApplicationModel) Step {
	// 1. nothing selected yet, or the application fee gate is still open
	if app == nil || !app.ApplicationFeePaid {
		return StepSelectProgram
	}

	// 2. profile completeness is recomputed from the fields every time
	if !profile.IsComplete() {
		return StepCompleteProfile
	}

	// 3. fee paid but the form was never submitted
	if !app.ApplicationSubmitted {
		return StepFillApplication
	}

	// 4-7. tri-state admin decision plus the registration fee gate
	switch {
	case app.ApplicationStatus == appModel.ApplicationStatusPending && app.ApplicationSubmitted:
		return StepPendingApproval
	case app.ApplicationStatus == appModel.ApplicationStatusRejected:
		return StepRejected
	case app.ApplicationStatus == appModel.ApplicationStatusApproved && !app.RegistrationFeePaid:
		return StepPayRegistrationFee
	case app.ApplicationStatus == appModel.ApplicationStatusApproved && app.RegistrationFeePaid:
		return StepFullyEnrolled
	}

	// Reachable only with a status outside the tri-state (corrupt row);
	// degrade to the earliest stage instead of failing.
	return StepSelectProgram
}
