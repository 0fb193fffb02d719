// Package apiclient is a typed client for the Package Factory backend REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/pfconsole/internal/metrics"
)

// Client calls the backend. It holds no state besides its transport and is
// safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. A nil httpClient uses http.DefaultClient.
// No timeout is imposed: callers bound calls through the request context.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the {success, error} wrapper most endpoints reply with.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (e envelope) outcome() (bool, string) { return e.Success, e.Error }

type enveloped interface {
	outcome() (bool, string)
}

// do sends a JSON request and decodes the JSON response into out. When out
// carries an envelope, success:false is turned into an *AppError.
func (c *Client) do(ctx context.Context, endpoint, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		switch {
		case IsAppError(err):
			outcome = "app_error"
		case err != nil:
			outcome = "transport_error"
		}
		metrics.RecordBackendCall(endpoint, outcome, time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Error != "" {
			return &AppError{Endpoint: endpoint, Message: env.Error}
		}
		msg := strings.TrimSpace(string(data))
		if len(msg) > 200 {
			msg = msg[:200] + "..."
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &TransportError{Endpoint: endpoint, Status: resp.StatusCode, Err: errors.New(msg)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Endpoint: endpoint, Status: resp.StatusCode, Err: fmt.Errorf("invalid response: %w", err)}
	}
	if e, ok := out.(enveloped); ok {
		if success, msg := e.outcome(); !success {
			return &AppError{Endpoint: endpoint, Message: msg}
		}
	}
	return nil
}

// stream sends a GET and returns the raw body for the caller to copy.
func (c *Client) stream(ctx context.Context, endpoint, path string) (*http.Response, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordBackendCall(endpoint, "transport_error", time.Since(start).Seconds())
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		metrics.RecordBackendCall(endpoint, "transport_error", time.Since(start).Seconds())
		return nil, &TransportError{Endpoint: endpoint, Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	metrics.RecordBackendCall(endpoint, "ok", time.Since(start).Seconds())
	return resp, nil
}
