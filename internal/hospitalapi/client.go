package hospitalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Client talks to the hospital API. It is the single remote gateway behind
// every portal operation; one method per server operation, request/response
// only. The bearer token captured at login is attached to every subsequent
// request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	log        zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "hospitalapi").Logger(),
	}
}

// SetToken replaces the bearer token used for authenticated requests.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

// envelope is the server's uniform response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

// do performs one request/response round trip. On success the envelope's
// data payload is decoded into out (when non-nil); a payload that does not
// decode is rejected as a ValidationError rather than propagated half-read.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{Op: op, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gateway call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode >= 400 {
		return c.statusError(op, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &ValidationError{Op: op, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if len(env.Data) == 0 {
		return &ValidationError{Op: op, Message: "response missing data payload"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ValidationError{Op: op, Message: fmt.Sprintf("malformed response payload: %v", err)}
	}
	return nil
}

func (c *Client) statusError(op string, status int, raw []byte) error {
	msg := fmt.Sprintf("http %d", status)
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		msg = env.Error
		if env.Details != "" {
			msg += ": " + env.Details
		}
	}

	switch {
	case status == http.StatusNotFound:
		return &NotFoundError{Op: op, Message: msg}
	case status >= 500:
		return &TransportError{Op: op, Err: fmt.Errorf("%s", msg)}
	default:
		return &ValidationError{Op: op, Message: msg}
	}
}
