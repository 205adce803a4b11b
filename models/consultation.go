package models

import "strings"

// ConsultationForm is the consolidated form state a booking wizard session
// accumulates across all steps. It is owned by the wizard service; step views
// receive read-only snapshots and changes happen only through update actions.
type ConsultationForm struct {
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	PracticeArea     string `json:"practiceArea"`
	Urgency          string `json:"urgency"`
	Description      string `json:"description"`
	PreferredDate    string `json:"preferredDate"`
	PreferredTime    string `json:"preferredTime"`
	ConsultationType string `json:"consultationType"`
	AdditionalNotes  string `json:"additionalNotes"`
	PaymentMethod    string `json:"paymentMethod"`
	TermsAccepted    bool   `json:"termsAccepted"`
}

// EligibilityResult is the advisory free-vs-paid hint for a contact. It is
// recomputed on every check and never persisted; the submission response is
// the authoritative billing outcome.
type EligibilityResult struct {
	HasUsedFreeConsultation bool `json:"hasUsedFreeConsultation"`
	ConsultationFee         int  `json:"consultationFee"`
	ConsultationCount       int  `json:"consultationCount"`
}

// Consultation is the server-authoritative consultation record as echoed by
// the capability API. Fields the backend does not return stay empty.
type Consultation struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	PracticeArea  string `json:"practice_area"`
	Status        string `json:"status,omitempty"`
	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
	IsFree        bool   `json:"is_free,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Confirmation is the human-readable booking confirmation.
type Confirmation struct {
	Reference     string `json:"reference"`
	Name          string `json:"name"`
	CaseType      string `json:"caseType"`
	Email         string `json:"email"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Fee           string `json:"fee"`
	Demo          bool   `json:"demo,omitempty"`
}

// ConfirmationReference derives the short reference shown to the client: the
// first 8 characters of the consultation ID, uppercased.
func ConfirmationReference(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// NewConfirmation renders a confirmation from the authoritative record,
// falling back to the locally held form for fields the server does not echo
// (typically the originally requested date and time).
func NewConfirmation(rec *Consultation, fallback *ConsultationForm, fee string) *Confirmation {
	conf := &Confirmation{Fee: fee}
	if rec != nil {
		conf.Reference = ConfirmationReference(rec.ID)
		conf.Name = strings.TrimSpace(rec.FirstName + " " + rec.LastName)
		conf.CaseType = rec.PracticeArea
		conf.Email = rec.Email
		conf.PreferredDate = rec.PreferredDate
		conf.PreferredTime = rec.PreferredTime
	}
	if fallback != nil {
		if conf.Name == "" {
			conf.Name = strings.TrimSpace(fallback.FirstName + " " + fallback.LastName)
		}
		if conf.CaseType == "" {
			conf.CaseType = fallback.PracticeArea
		}
		if conf.Email == "" {
			conf.Email = fallback.Email
		}
		if conf.PreferredDate == "" {
			conf.PreferredDate = fallback.PreferredDate
		}
		if conf.PreferredTime == "" {
			conf.PreferredTime = fallback.PreferredTime
		}
	}
	return conf
}
