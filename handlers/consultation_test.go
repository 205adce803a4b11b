package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexbook/models"
	"lexbook/services/wizard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeWizard scripts wizard responses per handler test.
type fakeWizard struct {
	session *models.WizardSession
	outcome *models.SubmitOutcome
	result  *models.CallbackOutcome
	err     error

	lastParams models.CallbackParams
}

func (f *fakeWizard) Start(ctx context.Context) (*models.WizardSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) UpdateContact(ctx context.Context, id, email, phone string) (*models.WizardSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) CheckEligibility(ctx context.Context, id string) (*models.WizardSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) UpdateForm(ctx context.Context, id string, patch *models.FormPatch) (*models.WizardSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) Advance(ctx context.Context, id string) (*models.WizardSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) Back(ctx context.Context, id string) (*models.WizardSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) Submit(ctx context.Context, id string) (*models.SubmitOutcome, error) {
	return f.outcome, f.err
}
func (f *fakeWizard) ResumeFromRedirect(ctx context.Context, params models.CallbackParams) (*models.CallbackOutcome, error) {
	f.lastParams = params
	return f.result, f.err
}

func newConsultationRouter(fake *fakeWizard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewConsultationHandler(fake, zap.NewNop(), "http://localhost:8080/consultation/confirmation")
	r := gin.New()
	r.POST("/api/consultation/session", h.StartSession)
	r.GET("/api/consultation/session/:sessionID", h.GetSession)
	r.PATCH("/api/consultation/session/:sessionID/contact", h.UpdateContact)
	r.POST("/api/consultation/session/:sessionID/submit", h.Submit)
	r.GET("/api/consultation/callback", h.PaymentCallback)
	return r
}

func TestStartSessionReturnsFixedData(t *testing.T) {
	fake := &fakeWizard{session: &models.WizardSession{ID: "s1", Step: models.StepPersonalInfo}}
	r := newConsultationRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/consultation/session", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "session")
	assert.Contains(t, body, "timeSlots")
	assert.Contains(t, body, "caseTypes")
	assert.Contains(t, body, "payMethods")
}

func TestGetSessionNotFound(t *testing.T) {
	fake := &fakeWizard{err: wizard.ErrSessionNotFound}
	r := newConsultationRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/consultation/session/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{wizard.NewValidationError("bad input"), http.StatusBadRequest},
		{wizard.NewStateError("wrong step"), http.StatusConflict},
		{wizard.NewBackendError("backend down"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		fake := &fakeWizard{err: tc.err}
		r := newConsultationRouter(fake)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/consultation/session/s1/contact",
			bytes.NewBufferString(`{"email":"a@b.com","phone":"01712345678"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.want, w.Code, "error %v", tc.err)
	}
}

func TestSubmitReturnsOutcome(t *testing.T) {
	fake := &fakeWizard{outcome: &models.SubmitOutcome{
		Confirmed:    true,
		Confirmation: &models.Confirmation{Reference: "ABCD1234", Fee: "FREE"},
	}}
	r := newConsultationRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/consultation/session/s1/submit", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var outcome models.SubmitOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.True(t, outcome.Confirmed)
	assert.Equal(t, "ABCD1234", outcome.Confirmation.Reference)
}

func TestCallbackBindsQueryParams(t *testing.T) {
	fake := &fakeWizard{result: &models.CallbackOutcome{Verified: true, Message: "ok"}}
	r := newConsultationRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/consultation/callback?status=success&tran_id=TXN-1&val_id=V1&demo=true", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", fake.lastParams.Status)
	assert.Equal(t, "TXN-1", fake.lastParams.TransactionID)
	assert.Equal(t, "V1", fake.lastParams.ValID)
	assert.True(t, fake.lastParams.Demo)
}

func TestCallbackRedirectsBrowsers(t *testing.T) {
	fake := &fakeWizard{result: &models.CallbackOutcome{Verified: true}}
	r := newConsultationRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/consultation/callback?status=success&tran_id=TXN-1", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	r.ServeHTTP(w, req)

	// Browsers land on a clean URL; a refresh can never replay the params.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "http://localhost:8080/consultation/confirmation", w.Header().Get("Location"))
}

func TestCallbackAnswersJSONForAPIClients(t *testing.T) {
	fake := &fakeWizard{result: &models.CallbackOutcome{Verified: true, Message: "Payment verified successfully!"}}
	r := newConsultationRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/consultation/callback?status=success&tran_id=TXN-1", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var outcome models.CallbackOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.True(t, outcome.Verified)
}
