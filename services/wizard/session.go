package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lexbook/models"
	"lexbook/utils"

	"github.com/go-redis/redis/v8"
)

// Store keeps wizard sessions, stashed pending payments, and payment callback
// outcome markers in Redis. Everything here is ephemeral flow state; durable
// records live behind the capability API.
type Store struct {
	client *redis.Client
}

// NewStore returns a Store backed by the given Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// SaveSession writes the session with the wizard TTL.
func (s *Store) SaveSession(ctx context.Context, session *models.WizardSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.client.Set(ctx, utils.WizardSessionPrefix+session.ID, data, utils.WizardSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*models.WizardSession, error) {
	data, err := s.client.Get(ctx, utils.WizardSessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wizard session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, utils.WizardSessionPrefix+id).Err()
}

// SavePendingPayment stashes the consultation payload for the duration of the
// gateway round-trip, keyed by transaction ID.
func (s *Store) SavePendingPayment(ctx context.Context, pending *models.PendingPayment) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending payment: %w", err)
	}
	key := utils.PendingPaymentPrefix + pending.TransactionID
	if err := s.client.Set(ctx, key, data, utils.WizardSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save pending payment: %w", err)
	}
	return nil
}

// GetPendingPayment retrieves the stashed payload for a transaction, or nil
// when nothing was stashed (or it expired).
func (s *Store) GetPendingPayment(ctx context.Context, transactionID string) (*models.PendingPayment, error) {
	data, err := s.client.Get(ctx, utils.PendingPaymentPrefix+transactionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pending models.PendingPayment
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending payment: %w", err)
	}
	return &pending, nil
}

// DeletePendingPayment removes the stash once it has been consumed.
func (s *Store) DeletePendingPayment(ctx context.Context, transactionID string) error {
	return s.client.Del(ctx, utils.PendingPaymentPrefix+transactionID).Err()
}

// ClaimCallback takes the reconciliation claim for a transaction. Only the
// delivery that wins the claim may verify; losers replay the recorded outcome
// or report the reconciliation as still in flight.
func (s *Store) ClaimCallback(ctx context.Context, transactionID string) (bool, error) {
	key := utils.CallbackClaimPrefix + transactionID
	claimed, err := s.client.SetNX(ctx, key, "1", utils.CallbackClaimTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim callback: %w", err)
	}
	return claimed, nil
}

// RecordCallbackOutcome stores the reconciliation result for a transaction so
// a redelivered callback replays it instead of re-verifying.
func (s *Store) RecordCallbackOutcome(ctx context.Context, transactionID string, outcome *models.CallbackOutcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal callback outcome: %w", err)
	}
	key := utils.CallbackOutcomePrefix + transactionID
	if err := s.client.Set(ctx, key, data, utils.CallbackOutcomeTTL).Err(); err != nil {
		return fmt.Errorf("failed to record callback outcome: %w", err)
	}
	return nil
}

// GetCallbackOutcome retrieves a recorded outcome, or nil when the transaction
// has not been reconciled yet.
func (s *Store) GetCallbackOutcome(ctx context.Context, transactionID string) (*models.CallbackOutcome, error) {
	data, err := s.client.Get(ctx, utils.CallbackOutcomePrefix+transactionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var outcome models.CallbackOutcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal callback outcome: %w", err)
	}
	return &outcome, nil
}
