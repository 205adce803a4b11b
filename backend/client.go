// Package backend is the thin client for the remote capability API (edge
// functions). Every durable record in the system lives behind this API; the
// server never owns persistence of its own.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lexbook/monitoring"

	"go.uber.org/zap"
)

// APIError is a non-success response from a capability.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API Error: %d", e.Status)
}

// Client invokes capabilities as opaque JSON-over-POST calls.
type Client struct {
	baseURL string
	anonKey string
	httpc   *http.Client
	logger  *zap.Logger
}

// New returns a capability client for the given function base URL and anon key.
func New(baseURL, anonKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// invoke POSTs body to the named capability and decodes the JSON response
// into out. Non-2xx responses are decoded as {"error": ...} when possible.
func (c *Client) invoke(ctx context.Context, function string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", function, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+function, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", function, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		monitoring.CapabilityCalls.WithLabelValues(function, "transport_error").Inc()
		return fmt.Errorf("%s call failed: %w", function, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		monitoring.CapabilityCalls.WithLabelValues(function, "api_error").Inc()
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Error
		}
		c.logger.Warn("capability returned error",
			zap.String("function", function),
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Message))
		return apiErr
	}
	monitoring.CapabilityCalls.WithLabelValues(function, "ok").Inc()

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", function, err)
	}
	return nil
}

// Ping reports whether the capability host answers at all. Any HTTP response
// counts as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
