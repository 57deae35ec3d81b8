// Package bakus is the HTTP client for the Bakus download server.
package bakus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.URL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken replaces the auth token used for subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// LoggedIn reports whether the client holds a token
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

func (c *Client) request(ctx context.Context, method, endpoint string, payload interface{}, requireToken bool) (*http.Response, error) {
	if requireToken && !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	fullURL, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	var body io.Reader
	if payload != nil {
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding payload: %w", err)
		}
		body = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

// do performs a request and decodes a JSON result when wantStatus matches.
// A nil result discards the body.
func (c *Client) do(ctx context.Context, method, endpoint string, payload, result interface{}, wantStatus int, requireToken bool) error {
	resp, err := c.request(ctx, method, endpoint, payload, requireToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return newAPIError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnexpectedResponse, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, result, http.StatusOK, true)
}

func (c *Client) post(ctx context.Context, endpoint string, payload, result interface{}) error {
	return c.do(ctx, http.MethodPost, endpoint, payload, result, http.StatusOK, true)
}

// postNoContent posts and expects 204 No Content
func (c *Client) postNoContent(ctx context.Context, endpoint string, payload interface{}) error {
	return c.do(ctx, http.MethodPost, endpoint, payload, nil, http.StatusNoContent, true)
}

// Login exchanges credentials for a token. The token is not stored on the
// client; callers persist it and call SetToken.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	payload := loginPayload{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login/", payload, &result, http.StatusOK, false); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &result, nil
}

// Logout invalidates the current token on the server
func (c *Client) Logout(ctx context.Context) error {
	if err := c.postNoContent(ctx, "/api/v1/auth/logout/", struct{}{}); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Profile returns the account of the logged in user
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/api/v1/auth/account/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Authenticated checks the token against the server. An unauthorized
// response is reported as false, not as an error.
func (c *Client) Authenticated(ctx context.Context) (bool, error) {
	if !c.LoggedIn() {
		return false, nil
	}
	_, err := c.Profile(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrUnauthorized) {
		return false, nil
	}
	return false, err
}

// Additions lists every addition on the server
func (c *Client) Additions(ctx context.Context) ([]Addition, error) {
	var results additionResults
	if err := c.get(ctx, "/api/v1/addition/", &results); err != nil {
		return nil, err
	}
	return results.Results, nil
}

// Addition fetches a single addition by ID from the list endpoint
func (c *Client) Addition(ctx context.Context, id string) (*Addition, error) {
	additions, err := c.Additions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range additions {
		if additions[i].ID == id {
			return &additions[i], nil
		}
	}
	return nil, fmt.Errorf("addition %s: %w", id, ErrNotFound)
}

// AddAddition queues a magnet link for download
func (c *Client) AddAddition(ctx context.Context, magnetLink string) (*Addition, error) {
	var addition Addition
	if err := c.post(ctx, "/api/v1/addition/", linkPayload{MagnetLink: magnetLink}, &addition); err != nil {
		return nil, err
	}
	return &addition, nil
}
