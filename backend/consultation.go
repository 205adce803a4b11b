package backend

import (
	"context"
	"errors"

	"lexbook/models"
)

// ErrSubmitFailed is returned when the backend acknowledges the call but
// rejects the submission.
var ErrSubmitFailed = errors.New("failed to submit consultation")

type eligibilityResponse struct {
	Success bool `json:"success"`

	// The deployed functions answered with either of these names over time.
	// hasUsedFreeConsultation is canonical; the legacy alias is accepted on
	// decode only.
	HasUsedFreeConsultation *bool `json:"hasUsedFreeConsultation"`
	FreeConsultationUsed    *bool `json:"freeConsultationUsed"`

	ConsultationFee   int `json:"consultationFee"`
	ConsultationCount int `json:"consultationCount"`
}

// CheckEligibility asks the backend whether the contact still qualifies for a
// free first consultation. The result is advisory only.
func (c *Client) CheckEligibility(ctx context.Context, email, phone string) (*models.EligibilityResult, error) {
	req := map[string]string{"email": email, "phone": phone}
	var resp eligibilityResponse
	if err := c.invoke(ctx, "consultation-check", req, &resp); err != nil {
		return nil, err
	}

	used := false
	switch {
	case resp.HasUsedFreeConsultation != nil:
		used = *resp.HasUsedFreeConsultation
	case resp.FreeConsultationUsed != nil:
		used = *resp.FreeConsultationUsed
	}

	return &models.EligibilityResult{
		HasUsedFreeConsultation: used,
		ConsultationFee:         resp.ConsultationFee,
		ConsultationCount:       resp.ConsultationCount,
	}, nil
}

type submitConsultationRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PracticeArea     string `json:"practiceArea"`
	Urgency          string `json:"urgency"`
	Message          string `json:"message"`
	PreferredDate    string `json:"preferredDate"`
	PreferredTime    string `json:"preferredTime"`
	ConsultationType string `json:"consultationType"`
	AdditionalNotes  string `json:"additionalNotes,omitempty"`
	IsFree           bool   `json:"isFree"`
}

type submitConsultationResponse struct {
	Success      bool                 `json:"success"`
	Consultation *models.Consultation `json:"consultation"`
	Error        string               `json:"error,omitempty"`
}

// SubmitConsultation creates the consultation record. The backend makes the
// final free-vs-paid determination regardless of the isFree hint sent here.
func (c *Client) SubmitConsultation(ctx context.Context, form *models.ConsultationForm, isFree bool) (*models.Consultation, error) {
	req := submitConsultationRequest{
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Email:            form.Email,
		Phone:            form.Phone,
		PracticeArea:     form.PracticeArea,
		Urgency:          form.Urgency,
		Message:          form.Description,
		PreferredDate:    form.PreferredDate,
		PreferredTime:    form.PreferredTime,
		ConsultationType: form.ConsultationType,
		AdditionalNotes:  form.AdditionalNotes,
		IsFree:           isFree,
	}

	var resp submitConsultationResponse
	if err := c.invoke(ctx, "submit-consultation", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Consultation == nil {
		if resp.Error != "" {
			return nil, &APIError{Message: resp.Error}
		}
		return nil, ErrSubmitFailed
	}
	return resp.Consultation, nil
}
