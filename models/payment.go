package models

import "time"

// PaymentSession represents one payment attempt tied to a pending
// consultation. It is created by the backend when payment is initiated and is
// consumed exactly once by the callback reconciliation.
type PaymentSession struct {
	TransactionID  string `json:"transactionId"`
	ConsultationID string `json:"consultationId"`
	GatewayURL     string `json:"gatewayUrl,omitempty"`
	Method         string `json:"method"`
}

// PaymentRedirect tells the client where to send the browser after a
// successful payment initiation.
type PaymentRedirect struct {
	GatewayURL     string `json:"gatewayUrl"`
	TransactionID  string `json:"transactionId"`
	ConsultationID string `json:"consultationId"`
	Demo           bool   `json:"demo,omitempty"`
}

// PendingPayment stashes the consultation payload while the browser is away
// at the gateway, so the confirmation can be restored after the redirect
// round-trip even for fields the backend does not echo.
type PendingPayment struct {
	TransactionID  string           `json:"transactionId"`
	ConsultationID string           `json:"consultationId"`
	SessionID      string           `json:"sessionId"`
	Form           ConsultationForm `json:"form"`
	Fee            int              `json:"fee"`
	Method         string           `json:"method"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// CallbackParams are the query parameters the gateway return URL carries.
type CallbackParams struct {
	Status        string `form:"status"`
	TransactionID string `form:"tran_id"`
	ValID         string `form:"val_id"`
	Demo          bool   `form:"demo"`
}

// CallbackOutcome records how a payment return was reconciled. Outcomes are
// kept per transaction so a redelivered callback replays the recorded result
// instead of issuing a second verification.
type CallbackOutcome struct {
	Verified     bool          `json:"verified"`
	Demo         bool          `json:"demo,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
	Message      string        `json:"message"`
}
