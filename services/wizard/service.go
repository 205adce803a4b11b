// Package wizard drives the consultation booking flow: a three-step form
// held as one consolidated session object, an advisory eligibility check, and
// the payment hand-off for returning clients.
package wizard

import (
	"context"
	"fmt"
	"time"

	"lexbook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CapabilityAPI is the slice of the remote capability client the wizard needs.
type CapabilityAPI interface {
	CheckEligibility(ctx context.Context, email, phone string) (*models.EligibilityResult, error)
	SubmitConsultation(ctx context.Context, form *models.ConsultationForm, isFree bool) (*models.Consultation, error)
	InitiatePayment(ctx context.Context, form *models.ConsultationForm, returnURL, method string) (*models.PaymentSession, error)
	VerifyPayment(ctx context.Context, transactionID, status, valID string) (bool, *models.Consultation, error)
}

// Service defines the booking wizard operations.
type Service interface {
	Start(ctx context.Context) (*models.WizardSession, error)
	Get(ctx context.Context, id string) (*models.WizardSession, error)
	UpdateContact(ctx context.Context, id, email, phone string) (*models.WizardSession, error)
	CheckEligibility(ctx context.Context, id string) (*models.WizardSession, error)
	UpdateForm(ctx context.Context, id string, patch *models.FormPatch) (*models.WizardSession, error)
	Advance(ctx context.Context, id string) (*models.WizardSession, error)
	Back(ctx context.Context, id string) (*models.WizardSession, error)
	Submit(ctx context.Context, id string) (*models.SubmitOutcome, error)
	ResumeFromRedirect(ctx context.Context, params models.CallbackParams) (*models.CallbackOutcome, error)
}

// DefaultWizardService implements Service on top of the capability API and
// the Redis-backed session store.
type DefaultWizardService struct {
	API      CapabilityAPI
	Store    *Store
	Logger   *zap.Logger
	Debounce *Debouncer

	// CallbackURL is the absolute payment return URL handed to the gateway.
	CallbackURL string
	// DefaultFee applies when the backend does not quote one.
	DefaultFee int
	// DemoAllowed enables the simulated payment path. Never set in production.
	DemoAllowed bool

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultWizardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start creates a fresh wizard session at the first step.
func (s *DefaultWizardService) Start(ctx context.Context) (*models.WizardSession, error) {
	session := &models.WizardSession{
		ID:        uuid.New().String(),
		Step:      models.StepPersonalInfo,
		CreatedAt: time.Now(),
	}
	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns a read-only snapshot of the session.
func (s *DefaultWizardService) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	return s.Store.GetSession(ctx, id)
}

// UpdateContact validates and stores the contact fields, then schedules a
// debounced eligibility refresh so the hint settles without a call per
// keystroke.
func (s *DefaultWizardService) UpdateContact(ctx context.Context, id, email, phone string) (*models.WizardSession, error) {
	session, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	cleaned, err := validateContact(email, phone)
	if err != nil {
		return nil, err
	}

	session.Form.Email = email
	session.Form.Phone = cleaned
	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if s.Debounce != nil {
		s.Debounce.Trigger(id, func() {
			s.refreshEligibility(context.Background(), id)
		})
	}
	return session, nil
}

// refreshEligibility recomputes the advisory hint in the background. Failures
// only log; the explicit check surfaces errors to the user.
func (s *DefaultWizardService) refreshEligibility(ctx context.Context, id string) {
	session, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return
	}
	result, err := s.API.CheckEligibility(ctx, session.Form.Email, session.Form.Phone)
	if err != nil {
		s.Logger.Warn("background eligibility check failed",
			zap.String("session", id), zap.Error(err))
		return
	}
	if result.ConsultationFee == 0 {
		result.ConsultationFee = s.DefaultFee
	}
	session.Eligibility = result
	if err := s.Store.SaveSession(ctx, session); err != nil {
		s.Logger.Warn("failed to save eligibility refresh",
			zap.String("session", id), zap.Error(err))
	}
}

// CheckEligibility runs the check immediately on user action. The wizard step
// is preserved on failure so the user can retry.
func (s *DefaultWizardService) CheckEligibility(ctx context.Context, id string) (*models.WizardSession, error) {
	session, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := validateContact(session.Form.Email, session.Form.Phone); err != nil {
		return nil, err
	}
	if s.Debounce != nil {
		s.Debounce.Cancel(id)
	}

	result, err := s.API.CheckEligibility(ctx, session.Form.Email, session.Form.Phone)
	if err != nil {
		s.Logger.Warn("eligibility check failed", zap.String("session", id), zap.Error(err))
		return nil, NewBackendError("Unable to verify eligibility. Please try again.")
	}
	if result.ConsultationFee == 0 {
		result.ConsultationFee = s.DefaultFee
	}
	session.Eligibility = result
	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateForm applies an explicit partial update to the consolidated form.
func (s *DefaultWizardService) UpdateForm(ctx context.Context, id string, patch *models.FormPatch) (*models.WizardSession, error) {
	session, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step == models.StepSubmitting || session.Step == models.StepConfirmed {
		return nil, NewStateError("This booking can no longer be edited.")
	}
	patch.Apply(&session.Form)
	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Advance moves the session forward one step, enforcing the gate for the
// current step.
func (s *DefaultWizardService) Advance(ctx context.Context, id string) (*models.WizardSession, error) {
	session, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case models.StepPersonalInfo:
		if err := validatePersonalInfo(&session.Form); err != nil {
			return nil, err
		}
		session.Step = models.StepCaseDetails
	case models.StepCaseDetails:
		// Schedule fields are validated at submission time.
		session.Step = models.StepSchedule
	case models.StepSchedule:
		return nil, NewStateError("Use submit to complete the final step.")
	default:
		return nil, NewStateError("This booking can no longer be advanced.")
	}

	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves the session one step backward. Entered values are never
// discarded; the form object is shared across steps.
func (s *DefaultWizardService) Back(ctx context.Context, id string) (*models.WizardSession, error) {
	session, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case models.StepCaseDetails:
		session.Step = models.StepPersonalInfo
	case models.StepSchedule:
		session.Step = models.StepCaseDetails
	case models.StepPersonalInfo:
		return nil, NewStateError("Already at the first step.")
	default:
		return nil, NewStateError("This booking can no longer be edited.")
	}

	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit finalizes the booking from the schedule step. Free consultations are
// submitted directly; paid ones stash the payload and hand off to the payment
// gateway. Only one submission may be in flight per session.
func (s *DefaultWizardService) Submit(ctx context.Context, id string) (*models.SubmitOutcome, error) {
	session, err := s.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	switch session.Step {
	case models.StepSchedule:
	case models.StepSubmitting:
		return nil, NewStateError("A submission is already in progress.")
	case models.StepConfirmed:
		return nil, NewStateError("This consultation has already been booked.")
	default:
		return nil, NewStateError("Complete the earlier steps before submitting.")
	}

	paid := session.PaidHint()
	if err := validateSchedule(&session.Form, s.now(), paid); err != nil {
		return nil, err
	}

	// Lock out concurrent submissions before any network call.
	session.Step = models.StepSubmitting
	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if !paid {
		return s.submitFree(ctx, session)
	}
	return s.initiatePaid(ctx, session)
}

func (s *DefaultWizardService) submitFree(ctx context.Context, session *models.WizardSession) (*models.SubmitOutcome, error) {
	record, err := s.API.SubmitConsultation(ctx, &session.Form, true)
	if err != nil {
		s.revertToSchedule(ctx, session)
		s.Logger.Warn("free consultation submission failed",
			zap.String("session", session.ID), zap.Error(err))
		return nil, NewBackendError("Failed to submit consultation. Please try again.")
	}

	confirmation := models.NewConfirmation(record, &session.Form, "FREE")
	session.Step = models.StepConfirmed
	session.ConsultationID = record.ID
	session.Confirmation = confirmation
	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.Logger.Info("free consultation booked",
		zap.String("session", session.ID), zap.String("consultation", record.ID))
	return &models.SubmitOutcome{Confirmed: true, Confirmation: confirmation}, nil
}

func (s *DefaultWizardService) initiatePaid(ctx context.Context, session *models.WizardSession) (*models.SubmitOutcome, error) {
	payment, err := s.API.InitiatePayment(ctx, &session.Form, s.CallbackURL, session.Form.PaymentMethod)
	if err != nil {
		s.revertToSchedule(ctx, session)
		s.Logger.Warn("payment initiation failed",
			zap.String("session", session.ID), zap.Error(err))
		return nil, NewBackendError("Failed to initiate payment. Please try again.")
	}

	demo := false
	gatewayURL := payment.GatewayURL
	if gatewayURL == "" {
		if !s.DemoAllowed {
			s.revertToSchedule(ctx, session)
			return nil, NewBackendError("Payment gateway is unavailable. Please try again later.")
		}
		// Degraded path: loop straight back to the callback with a
		// simulated success, flagged so it can never pass as a real payment.
		demo = true
		gatewayURL = fmt.Sprintf("%s?status=success&tran_id=%s&demo=true", s.CallbackURL, payment.TransactionID)
	}

	fee := s.DefaultFee
	if session.Eligibility != nil && session.Eligibility.ConsultationFee > 0 {
		fee = session.Eligibility.ConsultationFee
	}
	pending := &models.PendingPayment{
		TransactionID:  payment.TransactionID,
		ConsultationID: payment.ConsultationID,
		SessionID:      session.ID,
		Form:           session.Form,
		Fee:            fee,
		Method:         session.Form.PaymentMethod,
		CreatedAt:      time.Now(),
	}
	if err := s.Store.SavePendingPayment(ctx, pending); err != nil {
		s.revertToSchedule(ctx, session)
		return nil, err
	}

	session.TransactionID = payment.TransactionID
	session.ConsultationID = payment.ConsultationID
	if err := s.Store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.Logger.Info("payment initiated",
		zap.String("session", session.ID),
		zap.String("transaction", payment.TransactionID),
		zap.String("method", session.Form.PaymentMethod),
		zap.Bool("demo", demo))
	return &models.SubmitOutcome{
		Redirect: &models.PaymentRedirect{
			GatewayURL:     gatewayURL,
			TransactionID:  payment.TransactionID,
			ConsultationID: payment.ConsultationID,
			Demo:           demo,
		},
	}, nil
}

// revertToSchedule puts a failed submission back where the user can retry.
// No partial state is committed.
func (s *DefaultWizardService) revertToSchedule(ctx context.Context, session *models.WizardSession) {
	session.Step = models.StepSchedule
	if err := s.Store.SaveSession(ctx, session); err != nil {
		s.Logger.Warn("failed to restore schedule step",
			zap.String("session", session.ID), zap.Error(err))
	}
}
