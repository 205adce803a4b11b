// Package admin fronts the admin-dashboard capability for the firm's staff
// dashboard: headline stats, filtered listings, analytics, status updates,
// and CSV export.
package admin

import (
	"context"

	"lexbook/models"

	"go.uber.org/zap"
)

// BackendAPI is the slice of the capability client the admin surface needs.
// The admin key travels with every call; validating it is the backend's job.
type BackendAPI interface {
	AdminStats(ctx context.Context, adminKey string) (*models.AdminStats, error)
	AdminConsultations(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminConsultation, error)
	AdminPayments(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminPayment, error)
	AdminUsers(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminUser, error)
	AdminAnalytics(ctx context.Context, adminKey string, days int) (*models.AdminAnalytics, error)
	AdminConsultationDetails(ctx context.Context, adminKey, consultationID string) (*models.AdminConsultation, error)
	AdminUpdateConsultationStatus(ctx context.Context, adminKey, consultationID, status string) error
}

// Service implements the admin dashboard operations.
type Service struct {
	API    BackendAPI
	Logger *zap.Logger
}

// NewService returns an admin Service.
func NewService(api BackendAPI, logger *zap.Logger) *Service {
	return &Service{API: api, Logger: logger}
}

// Stats doubles as the login probe: a key the backend rejects fails here.
func (s *Service) Stats(ctx context.Context, adminKey string) (*models.AdminStats, error) {
	return s.API.AdminStats(ctx, adminKey)
}

func (s *Service) Consultations(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminConsultation, error) {
	return s.API.AdminConsultations(ctx, adminKey, filters)
}

func (s *Service) Payments(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminPayment, error) {
	return s.API.AdminPayments(ctx, adminKey, filters)
}

func (s *Service) Users(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminUser, error) {
	return s.API.AdminUsers(ctx, adminKey, filters)
}

func (s *Service) Analytics(ctx context.Context, adminKey string, days int) (*models.AdminAnalytics, error) {
	if days <= 0 {
		days = 30
	}
	return s.API.AdminAnalytics(ctx, adminKey, days)
}

func (s *Service) ConsultationDetails(ctx context.Context, adminKey, consultationID string) (*models.AdminConsultation, error) {
	return s.API.AdminConsultationDetails(ctx, adminKey, consultationID)
}

func (s *Service) UpdateConsultationStatus(ctx context.Context, adminKey, consultationID, status string) error {
	if err := s.API.AdminUpdateConsultationStatus(ctx, adminKey, consultationID, status); err != nil {
		return err
	}
	s.Logger.Info("consultation status updated",
		zap.String("consultation", consultationID), zap.String("status", status))
	return nil
}
