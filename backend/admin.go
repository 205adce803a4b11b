package backend

import (
	"context"
	"errors"

	"lexbook/models"
)

// ErrAdminRejected is returned when the admin capability refuses the key.
var ErrAdminRejected = errors.New("admin request rejected")

// adminRequest is the envelope the admin-dashboard capability expects: one
// endpoint, action-routed, with the admin key carried in the body.
type adminRequest struct {
	Action   string              `json:"action"`
	Filters  models.AdminFilters `json:"filters"`
	AdminKey string              `json:"adminKey"`
}

func (c *Client) adminInvoke(ctx context.Context, action, adminKey string, filters models.AdminFilters, out any) error {
	req := adminRequest{Action: action, Filters: filters, AdminKey: adminKey}
	return c.invoke(ctx, "admin-dashboard", req, out)
}

// AdminStats fetches the dashboard headline numbers. It doubles as the admin
// key probe: an invalid key fails here and nowhere else needs to be tried.
func (c *Client) AdminStats(ctx context.Context, adminKey string) (*models.AdminStats, error) {
	var resp struct {
		Success bool               `json:"success"`
		Stats   *models.AdminStats `json:"stats"`
		Error   string             `json:"error,omitempty"`
	}
	if err := c.adminInvoke(ctx, "get-stats", adminKey, models.AdminFilters{}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Stats == nil {
		return nil, ErrAdminRejected
	}
	return resp.Stats, nil
}

// AdminConsultations lists consultations matching the filters.
func (c *Client) AdminConsultations(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminConsultation, error) {
	var resp struct {
		Success       bool                       `json:"success"`
		Consultations []models.AdminConsultation `json:"consultations"`
		Error         string                     `json:"error,omitempty"`
	}
	if err := c.adminInvoke(ctx, "get-consultations", adminKey, filters, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrAdminRejected
	}
	return resp.Consultations, nil
}

// AdminPayments lists payments matching the filters.
func (c *Client) AdminPayments(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminPayment, error) {
	var resp struct {
		Success  bool                  `json:"success"`
		Payments []models.AdminPayment `json:"payments"`
		Error    string                `json:"error,omitempty"`
	}
	if err := c.adminInvoke(ctx, "get-payments", adminKey, filters, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrAdminRejected
	}
	return resp.Payments, nil
}

// AdminUsers lists contacts and their usage history.
func (c *Client) AdminUsers(ctx context.Context, adminKey string, filters models.AdminFilters) ([]models.AdminUser, error) {
	var resp struct {
		Success bool               `json:"success"`
		Users   []models.AdminUser `json:"users"`
		Error   string             `json:"error,omitempty"`
	}
	if err := c.adminInvoke(ctx, "get-users", adminKey, filters, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrAdminRejected
	}
	return resp.Users, nil
}

// AdminAnalytics fetches chart data for the given trailing window.
func (c *Client) AdminAnalytics(ctx context.Context, adminKey string, days int) (*models.AdminAnalytics, error) {
	var resp struct {
		Success   bool                   `json:"success"`
		Analytics *models.AdminAnalytics `json:"analytics"`
		Error     string                 `json:"error,omitempty"`
	}
	if err := c.adminInvoke(ctx, "get-analytics", adminKey, models.AdminFilters{Days: days}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Analytics == nil {
		return nil, ErrAdminRejected
	}
	return resp.Analytics, nil
}

// AdminConsultationDetails fetches one consultation in full.
func (c *Client) AdminConsultationDetails(ctx context.Context, adminKey, consultationID string) (*models.AdminConsultation, error) {
	var resp struct {
		Success      bool                      `json:"success"`
		Consultation *models.AdminConsultation `json:"consultation"`
		Error        string                    `json:"error,omitempty"`
	}
	filters := models.AdminFilters{ConsultationID: consultationID}
	if err := c.adminInvoke(ctx, "get-consultation-details", adminKey, filters, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Consultation == nil {
		return nil, ErrAdminRejected
	}
	return resp.Consultation, nil
}

// AdminUpdateConsultationStatus transitions a consultation's status.
func (c *Client) AdminUpdateConsultationStatus(ctx context.Context, adminKey, consultationID, status string) error {
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	filters := models.AdminFilters{ConsultationID: consultationID, NewStatus: status}
	if err := c.adminInvoke(ctx, "update-consultation-status", adminKey, filters, &resp); err != nil {
		return err
	}
	if !resp.Success {
		if resp.Error != "" {
			return &APIError{Message: resp.Error}
		}
		return ErrAdminRejected
	}
	return nil
}
