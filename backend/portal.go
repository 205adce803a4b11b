package backend

import (
	"context"
	"errors"

	"lexbook/models"
)

// ErrInvalidCredentials is returned for failed logins and dead tokens.
var ErrInvalidCredentials = errors.New("invalid credentials")

type clientAuthRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Token    string `json:"token,omitempty"`
}

type clientAuthResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token,omitempty"`
	Client  *models.Client `json:"client,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ClientLogin authenticates a portal client and returns the backend token.
func (c *Client) ClientLogin(ctx context.Context, email, password string) (string, *models.Client, error) {
	var resp clientAuthResponse
	req := clientAuthRequest{Action: "login", Email: email, Password: password}
	if err := c.invoke(ctx, "client-auth", req, &resp); err != nil {
		return "", nil, err
	}
	if !resp.Success || resp.Client == nil {
		if resp.Error != "" {
			return "", nil, &APIError{Message: resp.Error}
		}
		return "", nil, ErrInvalidCredentials
	}
	return resp.Token, resp.Client, nil
}

// ClientRegister creates a portal account and returns the backend token.
func (c *Client) ClientRegister(ctx context.Context, reg *models.PortalRegistration) (string, *models.Client, error) {
	var resp clientAuthResponse
	req := clientAuthRequest{
		Action:   "register",
		Email:    reg.Email,
		Password: reg.Password,
		FullName: reg.FullName,
		Phone:    reg.Phone,
		Company:  reg.Company,
	}
	if err := c.invoke(ctx, "client-auth", req, &resp); err != nil {
		return "", nil, err
	}
	if !resp.Success || resp.Client == nil {
		if resp.Error != "" {
			return "", nil, &APIError{Message: resp.Error}
		}
		return "", nil, ErrInvalidCredentials
	}
	return resp.Token, resp.Client, nil
}

// ClientVerify checks a backend token and returns the client it belongs to.
func (c *Client) ClientVerify(ctx context.Context, token string) (*models.Client, error) {
	var resp clientAuthResponse
	req := clientAuthRequest{Action: "verify", Token: token}
	if err := c.invoke(ctx, "client-auth", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Client == nil {
		return nil, ErrInvalidCredentials
	}
	return resp.Client, nil
}

// ClientLogout invalidates a backend token. Best effort.
func (c *Client) ClientLogout(ctx context.Context, token string) error {
	req := clientAuthRequest{Action: "logout", Token: token}
	return c.invoke(ctx, "client-auth", req, nil)
}

type clientPortalRequest struct {
	Action string `json:"action"`
	Token  string `json:"token"`
}

// ClientDashboard fetches the portal dashboard summary.
func (c *Client) ClientDashboard(ctx context.Context, token string) (*models.PortalDashboard, error) {
	var resp struct {
		Success   bool                    `json:"success"`
		Dashboard *models.PortalDashboard `json:"dashboard"`
		Error     string                  `json:"error,omitempty"`
	}
	req := clientPortalRequest{Action: "getDashboard", Token: token}
	if err := c.invoke(ctx, "client-portal", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Dashboard == nil {
		return nil, ErrInvalidCredentials
	}
	return resp.Dashboard, nil
}

// ClientCases lists the client's cases.
func (c *Client) ClientCases(ctx context.Context, token string) ([]models.PortalCase, error) {
	var resp struct {
		Success bool                `json:"success"`
		Cases   []models.PortalCase `json:"cases"`
		Error   string              `json:"error,omitempty"`
	}
	req := clientPortalRequest{Action: "getCases", Token: token}
	if err := c.invoke(ctx, "client-portal", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrInvalidCredentials
	}
	return resp.Cases, nil
}
