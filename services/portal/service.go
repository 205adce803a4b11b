// Package portal fronts the client-auth and client-portal capabilities. The
// server issues its own signed session token; the backend token it wraps
// never leaves the server.
package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lexbook/models"
	"lexbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrSessionExpired is returned when a presented session token is unknown.
var ErrSessionExpired = errors.New("portal session expired")

// BackendAPI is the slice of the capability client the portal needs.
type BackendAPI interface {
	ClientLogin(ctx context.Context, email, password string) (string, *models.Client, error)
	ClientRegister(ctx context.Context, reg *models.PortalRegistration) (string, *models.Client, error)
	ClientVerify(ctx context.Context, token string) (*models.Client, error)
	ClientLogout(ctx context.Context, token string) error
	ClientDashboard(ctx context.Context, token string) (*models.PortalDashboard, error)
	ClientCases(ctx context.Context, token string) ([]models.PortalCase, error)
}

// Service implements portal authentication and data access.
type Service struct {
	API    BackendAPI
	Cache  *redis.Client
	Logger *zap.Logger
}

// NewService returns a portal Service.
func NewService(api BackendAPI, cache *redis.Client, logger *zap.Logger) *Service {
	return &Service{API: api, Cache: cache, Logger: logger}
}

// Login authenticates against the backend and issues a local session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.Client, error) {
	backendToken, client, err := s.API.ClientLogin(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.issueSession(ctx, client, backendToken)
	if err != nil {
		return "", nil, err
	}
	return token, client, nil
}

// Register creates a portal account and issues a local session token.
func (s *Service) Register(ctx context.Context, reg *models.PortalRegistration) (string, *models.Client, error) {
	backendToken, client, err := s.API.ClientRegister(ctx, reg)
	if err != nil {
		return "", nil, err
	}
	token, err := s.issueSession(ctx, client, backendToken)
	if err != nil {
		return "", nil, err
	}
	return token, client, nil
}

func (s *Service) issueSession(ctx context.Context, client *models.Client, backendToken string) (string, error) {
	token, err := utils.GenerateToken(client.ID, client.Email, utils.PortalSessionTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	session := models.PortalSession{
		Client:        *client,
		BackendToken:  backendToken,
		CreatedAt:     time.Now(),
		LastUpdatedAt: time.Now(),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal portal session: %w", err)
	}
	key := utils.PortalSessionPrefix + utils.HashToken(token)
	if err := s.Cache.Set(ctx, key, data, utils.PortalSessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to save portal session: %w", err)
	}
	return token, nil
}

// Resolve validates a session token and returns the cached session.
func (s *Service) Resolve(ctx context.Context, token string) (*models.PortalSession, error) {
	if _, err := utils.ExtractIDFromToken(token); err != nil {
		return nil, ErrSessionExpired
	}
	key := utils.PortalSessionPrefix + utils.HashToken(token)
	data, err := s.Cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}
	var session models.PortalSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal portal session: %w", err)
	}
	return &session, nil
}

// Logout drops the local session and best-effort invalidates the backend
// token behind it.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.Resolve(ctx, token)
	if err == nil {
		if err := s.API.ClientLogout(ctx, session.BackendToken); err != nil {
			s.Logger.Warn("backend logout failed", zap.Error(err))
		}
	}
	key := utils.PortalSessionPrefix + utils.HashToken(token)
	return s.Cache.Del(ctx, key).Err()
}

// Dashboard fetches the dashboard summary for the session's client.
func (s *Service) Dashboard(ctx context.Context, session *models.PortalSession) (*models.PortalDashboard, error) {
	return s.API.ClientDashboard(ctx, session.BackendToken)
}

// Cases lists the session client's cases.
func (s *Service) Cases(ctx context.Context, session *models.PortalSession) ([]models.PortalCase, error) {
	return s.API.ClientCases(ctx, session.BackendToken)
}
