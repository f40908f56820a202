// Package apiclient is the Go client for the test platform API. It injects
// the bearer token on every call and centralizes 401 handling: the session
// is cleared and the request fails with ErrUnauthenticated, no retry.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrUnauthenticated is returned when the server answers 401. The client's
// session has already been cleared when this is returned.
var ErrUnauthenticated = errors.New("unauthenticated")

// Client talks to the platform API on behalf of one session.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *Session
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession starts the client with an existing session.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// WithUnauthorizedHandler registers a hook invoked after a 401 has cleared
// the session (the forced-logout path).
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    &Session{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the client's session state.
func (c *Client) Session() *Session {
	return c.session
}

// Logout clears the session locally. Tokens are stateless server-side, so
// there is nothing to revoke.
func (c *Client) Logout() {
	c.session.Clear()
}

// Login authenticates and stores token, role and display name in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.session.Token = resp.Token
		c.session.Role = resp.Role
		c.session.Name = resp.Name
	}
	return &resp, nil
}

// Register creates an account. It does not log the new user in.
func (c *Client) Register(ctx context.Context, email, password, role string) (*RegisterResponse, error) {
	body := map[string]string{"email": email, "password": password, "role": role}

	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Tests lists the published tests.
func (c *Client) Tests(ctx context.Context) ([]TestSummary, error) {
	var resp []TestSummary
	if err := c.do(ctx, http.MethodGet, "/api/student/tests", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TestDetails loads a test and its questions for attempting.
func (c *Client) TestDetails(ctx context.Context, testID uint64) (*TestDetails, error) {
	var resp TestDetails
	path := fmt.Sprintf("/api/test/%d", testID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submit sends a finished attempt for scoring.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/api/student/submit", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Result fetches the stored result of a submission.
func (c *Client) Result(ctx context.Context, submissionID uint64) (*Result, error) {
	var resp Result
	path := fmt.Sprintf("/api/student/result/%d", submissionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats fetches the creator dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (*StatsOverview, error) {
	var resp StatsOverview
	if err := c.do(ctx, http.MethodGet, "/api/creator/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if c.session.Active() {
		request.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthenticated
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		message := "api request failed"
		if err := json.Unmarshal(data, &errBody); err == nil && errBody.Error != "" {
			message = errBody.Error
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
