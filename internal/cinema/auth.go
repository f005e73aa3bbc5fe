package cinema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cinema-booking-platform/internal/models"
)

// Login authenticates against the remote API and returns the user
// along with the session cookie to forward on later calls. Login is
// the one call that needs the raw response headers, so it does not go
// through do.
func (c *Client) Login(ctx context.Context, creds *models.Credentials) (*models.User, string, error) {
	jsonData, err := json.Marshal(creds)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to reach cinema api: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", c.apiError(resp.StatusCode, bodyBytes)
	}

	var user models.User
	if err := json.Unmarshal(bodyBytes, &user); err != nil {
		return nil, "", fmt.Errorf("failed to decode login response: %w", err)
	}

	// Collapse Set-Cookie headers into the Cookie value forwarded on
	// subsequent requests.
	var pairs []string
	for _, sc := range resp.Cookies() {
		pairs = append(pairs, sc.Name+"="+sc.Value)
	}

	return &user, strings.Join(pairs, "; "), nil
}

// Logout invalidates the remote session.
func (c *Client) Logout(ctx context.Context, cookie string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", cookie, nil, nil)
}

// CurrentUser returns the user the cookie authenticates as.
func (c *Client) CurrentUser(ctx context.Context, cookie string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", cookie, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
