// internal/infrastructure/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
)

// TokenSource supplies the bearer token for authenticated calls. The session
// store implements it.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the typed REST client for the remote commerce backend. All
// persisted state lives behind it; the gateway never writes business data
// anywhere else.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthExpired func()
	log           *logrus.Entry
}

// NewClient creates a backend client with the configured request ceiling
func NewClient(cfg *config.Config, tokens TokenSource, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Backend.RequestTimeout,
		},
		tokens: tokens,
		log:    log.WithField("component", "backend_client"),
	}
}

// SetAuthExpiredHook registers the forced-logout hook fired whenever the
// backend answers 401 or 403 on an authenticated call
func (c *Client) SetAuthExpiredHook(fn func()) {
	c.onAuthExpired = fn
}

// get issues an authenticated GET and decodes the response into out
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// post issues an authenticated POST with a JSON body
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// errorBody is the message envelope the backend uses for non-2xx responses
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one backend call and converts every failure mode into an
// *Error with a Kind the caller can switch on.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "invalid request data", Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Kind: KindValidation, Message: "invalid request", Err: err}
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.classifyTransportError(method, path, requestID, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "network error, please check your connection", Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"latency":    time.Since(start),
	}).Debug("Backend call completed")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if authenticated && c.onAuthExpired != nil {
			// The hook chain stops the pollers, and this 401 may have arrived
			// inside a poller's own fetch. Dispatch on a fresh goroutine so
			// stopping that poller never waits on the goroutine running here.
			go c.onAuthExpired()
		}
		return &Error{
			Kind:    KindAuthExpired,
			Status:  resp.StatusCode,
			Message: "your session has expired, please log in again",
		}
	}

	if resp.StatusCode >= 400 {
		return &Error{
			Kind:    KindBackend,
			Status:  resp.StatusCode,
			Message: extractMessage(respBody, resp.StatusCode),
		}
	}

	// Some endpoints answer 2xx with an empty body; that is a valid
	// "no payload" response, not a decode error.
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{
			Kind:    KindBackend,
			Status:  resp.StatusCode,
			Message: "invalid response from server",
			Err:     err,
		}
	}

	return nil
}

// classifyTransportError distinguishes timeouts from other connectivity
// failures so they surface as distinct error kinds
func (c *Client) classifyTransportError(method, path, requestID string, err error) error {
	c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	}).WithError(err).Warn("Backend call failed")

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: "the request timed out, please try again", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindNetwork, Message: "request canceled", Err: err}
	}
	return &Error{Kind: KindNetwork, Message: "network error, please check your connection", Err: err}
}

// extractMessage pulls the backend's message out of a non-2xx body, falling
// back to the HTTP status text
func extractMessage(body []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return http.StatusText(status)
}
