package wizard

import (
	"strings"
	"testing"
	"time"

	"lexbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01712345678", "01712345678"},
		{"01712-345678", "01712345678"},
		{"017 1234 5678", "01712345678"},
		{"+8801712345678", "01712345678"},
		{"8801712345678", "01712345678"},
		{" 01712345678 ", "01712345678"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanPhone(tc.in), "input %q", tc.in)
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone(CleanPhone("01712345678")))
	assert.True(t, ValidPhone(CleanPhone("+8801912345678")))
	assert.True(t, ValidPhone(CleanPhone("01312345678")))

	assert.False(t, ValidPhone(CleanPhone("01112345678")), "operator prefix 11 does not exist")
	assert.False(t, ValidPhone(CleanPhone("0171234567")), "too short")
	assert.False(t, ValidPhone(CleanPhone("017123456789")), "too long")
	assert.False(t, ValidPhone(CleanPhone("abc")))
	assert.False(t, ValidPhone(CleanPhone("")))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("client@example.com"))
	assert.True(t, ValidEmail("first.last@firm.com.bd"))

	assert.False(t, ValidEmail("client@example"))
	assert.False(t, ValidEmail("no-at-sign.com"))
	assert.False(t, ValidEmail("spaces in@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestValidateContact(t *testing.T) {
	cleaned, err := validateContact("client@example.com", "+8801712345678")
	require.NoError(t, err)
	assert.Equal(t, "01712345678", cleaned)

	_, err = validateContact("", "01712345678")
	assert.True(t, IsValidation(err))

	_, err = validateContact("client@example.com", "12345")
	assert.True(t, IsValidation(err))
}

func validForm() models.ConsultationForm {
	return models.ConsultationForm{
		Email:         "client@example.com",
		Phone:         "01712345678",
		FirstName:     "Rahim",
		LastName:      "Uddin",
		PracticeArea:  "Family Law",
		Urgency:       "medium",
		Description:   "I need help with a property inheritance dispute.",
		PreferredDate: "2030-01-15",
		PreferredTime: "10:00 AM",
		TermsAccepted: true,
	}
}

func TestValidatePersonalInfo(t *testing.T) {
	form := validForm()
	require.NoError(t, validatePersonalInfo(&form))

	missingFirst := validForm()
	missingFirst.FirstName = "  "
	assert.True(t, IsValidation(validatePersonalInfo(&missingFirst)))

	shortDesc := validForm()
	shortDesc.Description = "too short"
	err := validatePersonalInfo(&shortDesc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 20 characters")
}

func TestValidatePersonalInfoDescriptionBoundary(t *testing.T) {
	// Exactly 20 characters after trimming is enough.
	exact := validForm()
	exact.Description = "Land boundary issue."
	require.Len(t, strings.TrimSpace(exact.Description), 20)
	require.NoError(t, validatePersonalInfo(&exact))

	// Surrounding whitespace does not count toward the minimum.
	padded := validForm()
	padded.Description = "   Land boundary issue.   "
	require.NoError(t, validatePersonalInfo(&padded))

	nineteen := validForm()
	nineteen.Description = "Land boundary issue"
	require.Len(t, nineteen.Description, 19)
	assert.True(t, IsValidation(validatePersonalInfo(&nineteen)))

	allSpace := validForm()
	allSpace.Description = strings.Repeat(" ", 30)
	assert.True(t, IsValidation(validatePersonalInfo(&allSpace)))
}

func TestValidateSchedule(t *testing.T) {
	today := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	form := validForm()
	require.NoError(t, validateSchedule(&form, today, false))

	// A booking for today itself is allowed.
	sameDay := validForm()
	sameDay.PreferredDate = "2026-08-31"
	require.NoError(t, validateSchedule(&sameDay, today, false))

	past := validForm()
	past.PreferredDate = "2026-08-30"
	assert.True(t, IsValidation(validateSchedule(&past, today, false)))

	badFormat := validForm()
	badFormat.PreferredDate = "15/01/2030"
	assert.True(t, IsValidation(validateSchedule(&badFormat, today, false)))

	badSlot := validForm()
	badSlot.PreferredTime = "6:00 PM"
	assert.True(t, IsValidation(validateSchedule(&badSlot, today, false)))

	noTerms := validForm()
	noTerms.TermsAccepted = false
	assert.True(t, IsValidation(validateSchedule(&noTerms, today, false)))
}

func TestValidateScheduleSameDayWestOfUTC(t *testing.T) {
	// Late evening in a zone behind UTC; the same calendar day must still be
	// bookable even though UTC has already rolled over.
	today := time.Date(2026, 8, 31, 23, 0, 0, 0, time.FixedZone("UTC-7", -7*60*60))

	sameDay := validForm()
	sameDay.PreferredDate = "2026-08-31"
	require.NoError(t, validateSchedule(&sameDay, today, false))

	yesterday := validForm()
	yesterday.PreferredDate = "2026-08-30"
	assert.True(t, IsValidation(validateSchedule(&yesterday, today, false)))
}

func TestValidateSchedulePaymentMethod(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	form := validForm()
	err := validateSchedule(&form, today, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment method")

	form.PaymentMethod = "bitcoin"
	assert.True(t, IsValidation(validateSchedule(&form, today, true)))

	form.PaymentMethod = "bkash"
	require.NoError(t, validateSchedule(&form, today, true))

	// Free consultations never require a payment method.
	free := validForm()
	require.NoError(t, validateSchedule(&free, today, false))
}
