// Package lake provides HTTP clients for the external capability providers:
// the document store, the vector index, and the completion service. Each is
// a narrow request/response contract over JSON.
package lake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	headerAPIKey    = "X-Api-Key"
	headerAccountID = "X-Account-Id"

	defaultTimeout = 60 * time.Second
)

// Config holds connection settings shared by all lake service clients.
type Config struct {
	BaseURL   string
	APIKey    string
	AccountID string
	Timeout   time.Duration
}

// Client is the shared JSON-over-HTTP transport for the lake services.
type Client struct {
	baseURL    string
	apiKey     string
	accountID  string
	httpClient *http.Client
}

// NewClient creates a lake transport with the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		accountID: cfg.AccountID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError represents an error response from a lake service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lake API error (%d): %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// post performs a POST request with a JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	if c.accountID != "" {
		req.Header.Set(headerAccountID, c.accountID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		message := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &eb) == nil {
			if eb.Error != "" {
				message = eb.Error
			} else if eb.Message != "" {
				message = eb.Message
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
