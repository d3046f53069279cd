package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/platform/retry"
)

// DefaultBaseURL is the production REST API root.
const DefaultBaseURL = "https://api.twitter.com/1.1"

const sendEventPath = "/direct_messages/events/new.json"

// Credentials are the four OAuth1 user-context secrets a DM bot runs with.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Client talks to the Twitter DM API. Requests are signed with OAuth1 user
// context. The retry policy defaults to a single attempt so callers see
// failures immediately; operators can opt into retries via configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	policy     retry.Policy
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests, mocks).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the OAuth1-signed transport entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy sets the transient-failure policy for sends.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// NewClient builds a DM client signing every request with the given
// user-context credentials.
func NewClient(creds Credentials, opts ...Option) *Client {
	oauthConfig := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	c := &Client{
		httpClient: oauthConfig.Client(oauth1.NoContext, token),
		baseURL:    DefaultBaseURL,
		policy:     retry.Single(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendEvent submits a create-DM-event request and returns the provider's
// echo of the created event. API errors come back as *APIError.
func (c *Client) SendEvent(ctx context.Context, req SendEventRequest) (*SendEventResponse, error) {
	return retry.Do(ctx, c.policy, classifySendError, func() (*SendEventResponse, error) {
		return c.doSendEvent(ctx, req)
	})
}

func (c *Client) doSendEvent(ctx context.Context, req SendEventRequest) (*SendEventResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode send event request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendEventPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build send event request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send event request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var out SendEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode send event response: %w", err)
	}
	return &out, nil
}

func classifySendError(err error) retry.Action {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		// Transport-level failure (DNS, connection reset, timeout).
		return retry.Transient
	}
	switch {
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return retry.RateLimited
	case apiErr.StatusCode >= 500:
		return retry.Transient
	default:
		return retry.Stop
	}
}

// ErrorDetail is one entry of Twitter's error envelope.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the Twitter API.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("twitter api: status %d, code %d: %s", e.StatusCode, e.Errors[0].Code, e.Errors[0].Message)
	}
	return fmt.Sprintf("twitter api: status %d", e.StatusCode)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	// Best effort: a non-JSON error body still yields a usable status error.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var envelope struct {
			Errors []ErrorDetail `json:"errors"`
		}
		if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil {
			apiErr.Errors = envelope.Errors
		}
	}
	return apiErr
}
