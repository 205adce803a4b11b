package wizard

import (
	"regexp"
	"strings"
	"time"

	"lexbook/models"
	"lexbook/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)
	sepReplacer  = strings.NewReplacer("-", "", " ", "", "+", "")
)

// CleanPhone normalizes a Bangladesh mobile number: separators are stripped
// and the 880 country prefix is folded back to the leading zero.
func CleanPhone(phone string) string {
	cleaned := sepReplacer.Replace(strings.TrimSpace(phone))
	if strings.HasPrefix(cleaned, "880") && len(cleaned) == 13 {
		cleaned = "0" + cleaned[3:]
	}
	return cleaned
}

// ValidPhone reports whether the cleaned number is a Bangladesh mobile number.
func ValidPhone(cleaned string) bool {
	return phonePattern.MatchString(cleaned)
}

// ValidEmail applies the RFC-lite email check used throughout the site.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validateContact(email, phone string) (string, error) {
	if email == "" || phone == "" {
		return "", NewValidationError("Please enter both email and phone number.")
	}
	if !ValidEmail(email) {
		return "", NewValidationError("Please enter a valid email address.")
	}
	cleaned := CleanPhone(phone)
	if !ValidPhone(cleaned) {
		return "", NewValidationError("Please enter a valid Bangladesh mobile number (e.g., 01XXX-XXXXXX).")
	}
	return cleaned, nil
}

// validatePersonalInfo gates the transition out of the personal-info step.
// Each unmet condition is named specifically.
func validatePersonalInfo(form *models.ConsultationForm) error {
	if strings.TrimSpace(form.FirstName) == "" {
		return NewValidationError("First name is required.")
	}
	if strings.TrimSpace(form.LastName) == "" {
		return NewValidationError("Last name is required.")
	}
	if form.PracticeArea == "" {
		return NewValidationError("Please select a case type.")
	}
	if form.Urgency == "" {
		return NewValidationError("Please select an urgency level.")
	}
	if len(strings.TrimSpace(form.Description)) < 20 {
		return NewValidationError("Please provide a more detailed description of your case (at least 20 characters).")
	}
	return nil
}

// validateSchedule gates the final submission. today is the minimum allowed
// preferred date; requirePayment adds the payment method requirement for paid
// consultations.
func validateSchedule(form *models.ConsultationForm, today time.Time, requirePayment bool) error {
	if form.PreferredDate == "" || form.PreferredTime == "" {
		return NewValidationError("Please select your preferred date and time.")
	}
	if _, err := time.Parse("2006-01-02", form.PreferredDate); err != nil {
		return NewValidationError("Preferred date must be in YYYY-MM-DD format.")
	}
	// Compare calendar days as strings; ISO dates order lexically, and this
	// keeps "today" in the server's own zone rather than UTC midnight.
	if form.PreferredDate < today.Format("2006-01-02") {
		return NewValidationError("Preferred date cannot be in the past.")
	}
	if !contains(utils.TimeSlots, form.PreferredTime) {
		return NewValidationError("Please select a time from the available slots.")
	}
	if form.ConsultationType != "" && !contains(utils.ConsultationChannels, form.ConsultationType) {
		return NewValidationError("Please choose office, video, or phone consultation.")
	}
	if !form.TermsAccepted {
		return NewValidationError("Please agree to the Terms of Service and Privacy Policy.")
	}
	if requirePayment {
		if form.PaymentMethod == "" {
			return NewValidationError("Please select a payment method.")
		}
		if !contains(utils.PaymentMethods, form.PaymentMethod) {
			return NewValidationError("Please select a supported payment method.")
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
