// Package api is the HTTP client for the user-records REST API.
//
// It translates typed query state into requests against a fixed base URL and
// decodes JSON responses into typed records. Every failure is one of three
// error types: NetworkError, ServerError, or DecodeError.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rshade/dataexplorer/internal/logging"
)

// Client defaults and limits.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 8 << 20

	// requestIDHeader carries a per-request identifier for correlating server logs.
	requestIDHeader = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API host, e.g. "http://localhost:8000".
	BaseURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport. Its Timeout is left untouched.
	HTTPClient *http.Client

	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// Client talks to the user-records API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient validates opts and returns a ready Client.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidBaseURL, raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:   u,
		http:      httpClient,
		userAgent: opts.UserAgent,
	}, nil
}

// BaseURL returns the API host the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// do sends one request and decodes a 2xx JSON body into out (skipped when out is nil).
//
//nolint:funlen // Request, logging, and the three error classes read best in one place.
func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, out any) error {
	endpoint := c.baseURL.JoinPath(strings.TrimPrefix(path, "/"))
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}
	target := endpoint.String()

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := logging.NewTraceID()
	req.Header.Set(requestIDHeader, requestID)

	log := logging.FromContext(ctx)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().
			Str("operation", op).
			Str("request_id", requestID).
			Str("url", target).
			Err(err).
			Msg("request failed")
		return &NetworkError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: fmt.Errorf("reading body: %w", err)}
	}

	log.Debug().
		Str("operation", op).
		Str("request_id", requestID).
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ServerError{Status: resp.StatusCode, Message: parseErrorDetail(body)}
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(body, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// parseErrorDetail extracts the message from a structured error body.
// It returns "" when the body is not structured.
func parseErrorDetail(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(resp.Detail, &detail); err == nil {
		return strings.TrimSpace(detail)
	}

	var details []validationDetail
	if err := json.Unmarshal(resp.Detail, &details); err == nil {
		msgs := make([]string, 0, len(details))
		for _, d := range details {
			if d.Msg == "" {
				continue
			}
			if field := locField(d.Loc); field != "" {
				msgs = append(msgs, field+": "+d.Msg)
			} else {
				msgs = append(msgs, d.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// locField returns the last element of a validation error location, e.g. "limit"
// for ["query", "limit"].
func locField(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}
