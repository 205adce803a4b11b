package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmationReference(t *testing.T) {
	assert.Equal(t, "ABCD1234", ConfirmationReference("abcd1234-efgh-5678"))
	assert.Equal(t, "SHORT", ConfirmationReference("short"))
	assert.Equal(t, "", ConfirmationReference(""))
}

func TestNewConfirmationPrefersServerRecord(t *testing.T) {
	rec := &Consultation{
		ID:            "abcd1234-efgh",
		FirstName:     "Rahim",
		LastName:      "Uddin",
		Email:         "server@example.com",
		PracticeArea:  "Family Law",
		PreferredDate: "2026-09-10",
		PreferredTime: "10:00 AM",
	}
	form := &ConsultationForm{
		FirstName:     "Stale",
		LastName:      "Name",
		Email:         "local@example.com",
		PracticeArea:  "Other",
		PreferredDate: "2026-09-11",
		PreferredTime: "11:00 AM",
	}

	conf := NewConfirmation(rec, form, "FREE")
	assert.Equal(t, "ABCD1234", conf.Reference)
	assert.Equal(t, "Rahim Uddin", conf.Name)
	assert.Equal(t, "server@example.com", conf.Email)
	assert.Equal(t, "2026-09-10", conf.PreferredDate)
	assert.Equal(t, "FREE", conf.Fee)
}

func TestNewConfirmationFallsBackToForm(t *testing.T) {
	// The backend echoes the record without the schedule fields; the locally
	// held form fills the gaps.
	rec := &Consultation{ID: "abcd1234", FirstName: "Rahim", LastName: "Uddin"}
	form := &ConsultationForm{
		Email:         "client@example.com",
		PracticeArea:  "Tax Law",
		PreferredDate: "2026-09-11",
		PreferredTime: "11:00 AM",
	}

	conf := NewConfirmation(rec, form, "BDT 2000")
	assert.Equal(t, "client@example.com", conf.Email)
	assert.Equal(t, "Tax Law", conf.CaseType)
	assert.Equal(t, "2026-09-11", conf.PreferredDate)
	assert.Equal(t, "11:00 AM", conf.PreferredTime)
}

func TestNewConfirmationWithoutRecord(t *testing.T) {
	form := &ConsultationForm{FirstName: "Rahim", LastName: "Uddin", Email: "client@example.com"}

	conf := NewConfirmation(nil, form, "BDT 2500")
	assert.Empty(t, conf.Reference)
	assert.Equal(t, "Rahim Uddin", conf.Name)
	assert.Equal(t, "BDT 2500", conf.Fee)
}

func TestFormPatchApply(t *testing.T) {
	form := ConsultationForm{FirstName: "Rahim", Description: "original description text"}
	name := "Karim"
	terms := true
	patch := FormPatch{FirstName: &name, TermsAccepted: &terms}
	patch.Apply(&form)

	assert.Equal(t, "Karim", form.FirstName)
	assert.True(t, form.TermsAccepted)
	// Unset fields stay untouched.
	assert.Equal(t, "original description text", form.Description)
}
