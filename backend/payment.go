package backend

import (
	"context"
	"errors"

	"lexbook/models"
)

var (
	// ErrPaymentInitiation is returned when the backend cannot open a
	// payment session.
	ErrPaymentInitiation = errors.New("failed to initiate payment")
)

type initiatePaymentRequest struct {
	submitConsultationRequest
	ReturnURL     string `json:"returnUrl"`
	PaymentMethod string `json:"paymentMethod"`
}

type initiatePaymentResponse struct {
	Success        bool   `json:"success"`
	TransactionID  string `json:"transactionId"`
	ConsultationID string `json:"consultationId"`
	GatewayURL     string `json:"gatewayUrl,omitempty"`
	Error          string `json:"error,omitempty"`
}

// InitiatePayment opens a payment session for a paid consultation and returns
// the gateway redirect target. A missing GatewayURL means the degraded/demo
// path; the caller decides whether that path is permitted.
func (c *Client) InitiatePayment(ctx context.Context, form *models.ConsultationForm, returnURL, method string) (*models.PaymentSession, error) {
	req := initiatePaymentRequest{
		submitConsultationRequest: submitConsultationRequest{
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
		},
		ReturnURL:     returnURL,
		PaymentMethod: method,
	}

	var resp initiatePaymentResponse
	if err := c.invoke(ctx, "payment-initiate", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.TransactionID == "" {
		if resp.Error != "" {
			return nil, &APIError{Message: resp.Error}
		}
		return nil, ErrPaymentInitiation
	}
	return &models.PaymentSession{
		TransactionID:  resp.TransactionID,
		ConsultationID: resp.ConsultationID,
		GatewayURL:     resp.GatewayURL,
		Method:         method,
	}, nil
}

type verifyPaymentRequest struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	ValID         string `json:"valId,omitempty"`
}

type verifyPaymentResponse struct {
	Success      bool                 `json:"success"`
	Verified     bool                 `json:"verified"`
	Consultation *models.Consultation `json:"consultation"`
	Error        string               `json:"error,omitempty"`
}

// VerifyPayment confirms a transaction after the gateway redirects back.
// Verification is read-only against the already-created pending record; the
// backend guarantees re-verifying the same transaction does not double-charge.
func (c *Client) VerifyPayment(ctx context.Context, transactionID, status, valID string) (bool, *models.Consultation, error) {
	req := verifyPaymentRequest{
		TransactionID: transactionID,
		Status:        status,
		ValID:         valID,
	}
	var resp verifyPaymentResponse
	if err := c.invoke(ctx, "payment-verify", req, &resp); err != nil {
		return false, nil, err
	}
	if !resp.Success {
		if resp.Error != "" {
			return false, nil, &APIError{Message: resp.Error}
		}
		return false, nil, errors.New("payment verification did not succeed")
	}
	return resp.Verified, resp.Consultation, nil
}
