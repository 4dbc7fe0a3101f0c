package mailapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mixelka/codefetch/pkg/models"
)

// TransportError is a network or HTTP-level failure: the request did not
// complete, the provider answered with a non-2xx status, or the body could
// not be decoded.
type TransportError struct {
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("mail api transport error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("mail api transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError is a well-formed provider response signaling an
// application-level failure, carrying the provider's own message.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail api provider error: %s", e.Message)
}

// Config for the mail API client
type Config struct {
	BaseURL string // e.g., https://mail.example.com
	Timeout time.Duration
}

// Client talks to the mailbox provider's HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// listResponse is the provider's message-list envelope. Type is "success" or
// "error"; Msg carries the provider message on error.
type listResponse struct {
	Type string           `json:"type"`
	Msg  string           `json:"msg"`
	Data []models.Message `json:"data"`
}

// NewClient creates a new mail API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMessages lists up to limit of the account's most recent messages.
// Returns a *TransportError for HTTP or decode failures and a *ProviderError
// when the provider reports an application-level failure.
func (c *Client) FetchMessages(ctx context.Context, sessionToken, accountID string, limit int) ([]models.Message, error) {
	url := fmt.Sprintf("%s/api/v1/messages/%s?limit=%d", c.baseURL, accountID, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Session-Token", sessionToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", string(body))}
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w (body: %s)", err, string(body))}
	}

	if list.Type != "success" {
		msg := list.Msg
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &ProviderError{Message: msg}
	}

	return list.Data, nil
}

// Session binds the client to one session token so it can serve as the poll
// loop's fetch backend.
type Session struct {
	client *Client
	token  string
}

// Session returns a token-bound fetcher.
func (c *Client) Session(token string) *Session {
	return &Session{client: c, token: token}
}

// FetchMessages implements the poller's Fetcher interface.
func (s *Session) FetchMessages(ctx context.Context, accountID string, limit int) ([]models.Message, error) {
	return s.client.FetchMessages(ctx, s.token, accountID, limit)
}
