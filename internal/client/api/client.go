// Package api implements the HTTP client for the team board server.
// It speaks the server's JSON envelopes and translates error responses
// into sentinel errors the CLI can branch on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/teamboard/internal/common"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token sent with subsequent requests.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// errorEnvelope is the uniform error shape the server responds with.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)

		apiErr := &APIError{StatusCode: resp.StatusCode, Code: envelope.Code, Message: envelope.Error}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}

		if resp.StatusCode == http.StatusUnauthorized ||
			envelope.Code == "INVALID_TOKEN" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("cannot decode response: %w", err)
		}
	}
	return nil
}

// Login exchanges credentials for a token. The token is installed on the
// client so later calls are authenticated. The password slice is not
// retained.
func (c *Client) Login(ctx context.Context, username string, password []byte) (*LoginResult, error) {
	req := map[string]string{"username": username, "password": string(password)}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		User    User   `json:"user"`
		Token   string `json:"token"`
	}

	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &LoginResult{User: resp.User, Token: resp.Token}, nil
}

// Statuses returns the status directory.
func (c *Client) Statuses(ctx context.Context) ([]Status, error) {
	var resp struct {
		Success  bool     `json:"success"`
		Statuses []Status `json:"statuses"`
		Total    int      `json:"total"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/statuses", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Statuses, nil
}

// Users returns the roster, optionally filtered by exact status name.
func (c *Client) Users(ctx context.Context, status string) ([]User, error) {
	path := "/api/users"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var resp struct {
		Success bool   `json:"success"`
		Users   []User `json:"users"`
		Total   int    `json:"total"`
	}

	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// Me returns the authenticated user's own profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		Success bool `json:"success"`
		User    User `json:"user"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateMyStatus changes the authenticated user's status to statusID.
func (c *Client) UpdateMyStatus(ctx context.Context, statusID int64) (*UpdateResult, error) {
	req := map[string]int64{"statusId": statusID}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		User    User   `json:"user"`
	}

	if err := c.do(ctx, http.MethodPut, "/api/users/me/status", req, &resp); err != nil {
		return nil, err
	}
	return &UpdateResult{Message: resp.Message, User: resp.User}, nil
}

// Ping probes the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
