package models

import "time"

// WizardStep identifies where a booking wizard session currently is.
type WizardStep string

const (
	StepPersonalInfo WizardStep = "personal_info"
	StepCaseDetails  WizardStep = "case_details"
	StepSchedule     WizardStep = "schedule"
	StepSubmitting   WizardStep = "submitting"
	StepConfirmed    WizardStep = "confirmed"
	StepFailed       WizardStep = "failed"
)

// WizardSession is one booking attempt, cached with a TTL for the lifetime of
// the wizard traversal (and the payment round-trip, if any).
type WizardSession struct {
	ID             string             `json:"id"`
	Step           WizardStep         `json:"step"`
	Form           ConsultationForm   `json:"form"`
	Eligibility    *EligibilityResult `json:"eligibility,omitempty"`
	ConsultationID string             `json:"consultationId,omitempty"`
	TransactionID  string             `json:"transactionId,omitempty"`
	Confirmation   *Confirmation      `json:"confirmation,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// PaidHint reports whether the advisory eligibility result indicates the
// consultation will be billed. Without a check the wizard assumes free.
func (s *WizardSession) PaidHint() bool {
	return s.Eligibility != nil && s.Eligibility.HasUsedFreeConsultation
}

// FormPatch carries an explicit partial update to the consolidated form.
// Only non-nil fields are applied, so going back a step never clears what was
// already entered.
type FormPatch struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	PracticeArea     *string `json:"practiceArea,omitempty"`
	Urgency          *string `json:"urgency,omitempty"`
	Description      *string `json:"description,omitempty"`
	PreferredDate    *string `json:"preferredDate,omitempty"`
	PreferredTime    *string `json:"preferredTime,omitempty"`
	ConsultationType *string `json:"consultationType,omitempty"`
	AdditionalNotes  *string `json:"additionalNotes,omitempty"`
	PaymentMethod    *string `json:"paymentMethod,omitempty"`
	TermsAccepted    *bool   `json:"termsAccepted,omitempty"`
}

// Apply writes the non-nil patch fields onto the form.
func (p *FormPatch) Apply(f *ConsultationForm) {
	if p.FirstName != nil {
		f.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		f.LastName = *p.LastName
	}
	if p.PracticeArea != nil {
		f.PracticeArea = *p.PracticeArea
	}
	if p.Urgency != nil {
		f.Urgency = *p.Urgency
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.PreferredDate != nil {
		f.PreferredDate = *p.PreferredDate
	}
	if p.PreferredTime != nil {
		f.PreferredTime = *p.PreferredTime
	}
	if p.ConsultationType != nil {
		f.ConsultationType = *p.ConsultationType
	}
	if p.AdditionalNotes != nil {
		f.AdditionalNotes = *p.AdditionalNotes
	}
	if p.PaymentMethod != nil {
		f.PaymentMethod = *p.PaymentMethod
	}
	if p.TermsAccepted != nil {
		f.TermsAccepted = *p.TermsAccepted
	}
}

// SubmitOutcome is what a schedule-step submission produces: either an
// immediate confirmation (free consultation) or a gateway redirect (paid).
type SubmitOutcome struct {
	Confirmed    bool             `json:"confirmed"`
	Confirmation *Confirmation    `json:"confirmation,omitempty"`
	Redirect     *PaymentRedirect `json:"redirect,omitempty"`
}
