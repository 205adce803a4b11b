package wizard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"lexbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stashPending(t *testing.T, svc *DefaultWizardService, sessionID string) *models.PendingPayment {
	t.Helper()
	pending := &models.PendingPayment{
		TransactionID:  "TXN-100",
		ConsultationID: "cons-1",
		SessionID:      sessionID,
		Form:           validForm(),
		Fee:            2500,
		Method:         "bkash",
		CreatedAt:      time.Now(),
	}
	require.NoError(t, svc.Store.SavePendingPayment(context.Background(), pending))
	return pending
}

func TestResumeVerifiesExactlyOnce(t *testing.T) {
	svc, api := newTestService(t)
	api.verifyOK = true
	api.verifyRecord = &models.Consultation{
		ID:           "abcd1234-efgh",
		FirstName:    "Rahim",
		LastName:     "Uddin",
		Email:        "client@example.com",
		PracticeArea: "Family Law",
	}
	ctx := context.Background()
	session, err := svc.Start(ctx)
	require.NoError(t, err)
	stashPending(t, svc, session.ID)

	params := models.CallbackParams{Status: "success", TransactionID: "TXN-100", ValID: "VAL-1"}
	outcome, err := svc.ResumeFromRedirect(ctx, params)
	require.NoError(t, err)
	assert.True(t, outcome.Verified)
	assert.Equal(t, "Payment verified successfully!", outcome.Message)
	require.NotNil(t, outcome.Confirmation)
	assert.Equal(t, "ABCD1234", outcome.Confirmation.Reference)
	assert.Equal(t, "BDT 2500", outcome.Confirmation.Fee)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.verifyCalls))

	// Redelivery (refresh, back button) replays the recorded outcome.
	replayed, err := svc.ResumeFromRedirect(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, outcome.Verified, replayed.Verified)
	assert.Equal(t, outcome.Message, replayed.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.verifyCalls))
}

func TestResumeMapsSuccessStatus(t *testing.T) {
	svc, api := newTestService(t)
	api.verifyOK = true
	ctx := context.Background()
	session, err := svc.Start(ctx)
	require.NoError(t, err)
	stashPending(t, svc, session.ID)

	_, err = svc.ResumeFromRedirect(ctx, models.CallbackParams{Status: "success", TransactionID: "TXN-100"})
	require.NoError(t, err)
	assert.Equal(t, "VALID", api.lastVerifyStatus)
}

func TestResumeSettlesSession(t *testing.T) {
	svc, api := newTestService(t)
	api.verifyOK = true
	api.verifyRecord = &models.Consultation{ID: "cons-1", FirstName: "Rahim", LastName: "Uddin"}
	ctx := context.Background()
	session, err := svc.Start(ctx)
	require.NoError(t, err)
	stashPending(t, svc, session.ID)

	_, err = svc.ResumeFromRedirect(ctx, models.CallbackParams{Status: "success", TransactionID: "TXN-100"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, got.Step)
	require.NotNil(t, got.Confirmation)

	// The stash is consumed exactly once.
	pending, err := svc.Store.GetPendingPayment(ctx, "TXN-100")
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestResumeFailureIsTerminal(t *testing.T) {
	svc, api := newTestService(t)
	api.verifyOK = false
	ctx := context.Background()
	session, err := svc.Start(ctx)
	require.NoError(t, err)
	stashPending(t, svc, session.ID)

	outcome, err := svc.ResumeFromRedirect(ctx, models.CallbackParams{Status: "failed", TransactionID: "TXN-100"})
	require.NoError(t, err)
	assert.False(t, outcome.Verified)
	assert.Equal(t, "Payment verification failed. Please contact support.", outcome.Message)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepFailed, got.Step)

	// The failure is recorded too; a retry never re-verifies.
	_, err = svc.ResumeFromRedirect(ctx, models.CallbackParams{Status: "failed", TransactionID: "TXN-100"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.verifyCalls))
}

func TestResumeDemoFallback(t *testing.T) {
	svc, api := newTestService(t)
	api.verifyErr = errors.New("no verification backend")
	ctx := context.Background()
	session, err := svc.Start(ctx)
	require.NoError(t, err)
	stashPending(t, svc, session.ID)

	outcome, err := svc.ResumeFromRedirect(ctx, models.CallbackParams{
		Status: "success", TransactionID: "TXN-100", Demo: true,
	})
	require.NoError(t, err)
	assert.True(t, outcome.Verified)
	assert.True(t, outcome.Demo)
	assert.Equal(t, "Demo payment processed successfully!", outcome.Message)
	require.NotNil(t, outcome.Confirmation)
	assert.True(t, outcome.Confirmation.Demo)
	assert.Equal(t, "BDT 2500", outcome.Confirmation.Fee)
	// No authoritative record; the confirmation falls back to the stash.
	assert.Equal(t, "Rahim Uddin", outcome.Confirmation.Name)
}

func TestResumeDemoNotAllowedInProduction(t *testing.T) {
	svc, api := newTestService(t)
	svc.DemoAllowed = false
	api.verifyErr = errors.New("no verification backend")
	ctx := context.Background()
	session, err := svc.Start(ctx)
	require.NoError(t, err)
	stashPending(t, svc, session.ID)

	outcome, err := svc.ResumeFromRedirect(ctx, models.CallbackParams{
		Status: "success", TransactionID: "TXN-100", Demo: true,
	})
	require.NoError(t, err)
	assert.False(t, outcome.Verified)
}

func TestResumeConcurrentDeliveryNeverDoubleVerifies(t *testing.T) {
	svc, api := newTestService(t)
	api.verifyOK = true
	ctx := context.Background()
	session, err := svc.Start(ctx)
	require.NoError(t, err)
	stashPending(t, svc, session.ID)

	// Another delivery of the same callback holds the claim and has not
	// recorded its outcome yet.
	claimed, err := svc.Store.ClaimCallback(ctx, "TXN-100")
	require.NoError(t, err)
	require.True(t, claimed)

	params := models.CallbackParams{Status: "success", TransactionID: "TXN-100"}
	_, err = svc.ResumeFromRedirect(ctx, params)
	require.Error(t, err)
	assert.True(t, IsState(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.verifyCalls))

	// Once the winner records the outcome, the loser replays it.
	recorded := &models.CallbackOutcome{Verified: true, Message: "Payment verified successfully!"}
	require.NoError(t, svc.Store.RecordCallbackOutcome(ctx, "TXN-100", recorded))

	outcome, err := svc.ResumeFromRedirect(ctx, params)
	require.NoError(t, err)
	assert.True(t, outcome.Verified)
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.verifyCalls))
}

func TestResumeMissingParams(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResumeFromRedirect(context.Background(), models.CallbackParams{Status: "success"})
	assert.True(t, IsValidation(err))

	_, err = svc.ResumeFromRedirect(context.Background(), models.CallbackParams{TransactionID: "TXN-1"})
	assert.True(t, IsValidation(err))
}

func TestResumeWithoutStashStillAnswers(t *testing.T) {
	svc, api := newTestService(t)
	api.verifyOK = true
	api.verifyRecord = &models.Consultation{ID: "cons-2", FirstName: "Karim", LastName: "Ahmed"}

	// Session expired during the gateway round-trip; the outcome is still
	// produced from the authoritative record alone.
	outcome, err := svc.ResumeFromRedirect(context.Background(), models.CallbackParams{
		Status: "success", TransactionID: "TXN-LOST",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Verified)
	require.NotNil(t, outcome.Confirmation)
	assert.Equal(t, "Karim Ahmed", outcome.Confirmation.Name)
	assert.Equal(t, "BDT 2000", outcome.Confirmation.Fee)
}
