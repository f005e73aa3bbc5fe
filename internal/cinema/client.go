// Package cinema is the HTTP client for the remote cinema REST API.
// The service owns no catalog, reservation, or payment data itself;
// everything in this package is a thin, typed wrapper over that API.
package cinema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cinema-booking-platform/pkg/logger"
)

// Config configures the remote API client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryDelay time.Duration
}

// Client talks to the remote cinema API. Credentials are cookie-based:
// authenticated calls forward the caller's remote session cookie.
type Client struct {
	baseURL    string
	client     *http.Client
	retryDelay time.Duration
	log        logger.Logger
}

// NewClient creates a cinema API client.
func NewClient(cfg Config, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		client:     &http.Client{Timeout: timeout},
		retryDelay: retryDelay,
		log:        log,
	}
}

// APIError is a non-2xx response from the cinema API. Message carries
// the server-provided text when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsServerError reports whether the error is a 5xx API response.
func IsServerError(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode >= 500
}

// do performs one JSON round trip. cookie, body, and out may be empty.
func (c *Client) do(ctx context.Context, method, path, cookie string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach cinema api: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp.StatusCode, bodyBytes)
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// doRetry is do with up to attempts tries, retrying only on 5xx
// responses with a fixed delay between tries.
func (c *Client) doRetry(ctx context.Context, attempts int, method, path, cookie string, body, out any) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = c.do(ctx, method, path, cookie, body, out)
		if lastErr == nil || !IsServerError(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		c.log.Warn("cinema api request failed, retrying",
			"path", path, "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
	return lastErr
}

// apiError extracts the server-provided message from a JSON error body
// when present, otherwise falls back to a generic statused message.
func (c *Client) apiError(status int, body []byte) error {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return &APIError{StatusCode: status, Message: parsed.Message}
		}
		if parsed.Error != "" {
			return &APIError{StatusCode: status, Message: parsed.Error}
		}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("cinema api returned status %d", status)}
}
