// Package httpclient is the JSON-over-HTTP plumbing shared by the backend clients.
package httpclient

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

	"github.com/MisterMaks/rdrt-client/internal/logger"
)

// Used constants.
const (
	ContentTypeKey     string = "Content-Type"
	AuthorizationKey   string = "Authorization"
	AcceptKey          string = "Accept"
	ApplicationJSONKey string = "application/json"
	FormURLEncodedKey  string = "application/x-www-form-urlencoded"
	BearerPrefix       string = "Bearer "

	DefaultTimeout time.Duration = 15 * time.Second
)

// APIError is failed backend call. StatusCode 0 means no response was received.
type APIError struct {
	StatusCode int
	Detail     string
	Err        error
}

// Error implements error.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// Unwrap returns underlying transport error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Message returns text for the user: backend detail or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// IsUnreachable reports whether err means the backend was not reached at all.
func IsUnreachable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0
}

// TokenSourceInterface gives the current bearer token, empty if there is none.
type TokenSourceInterface interface {
	Get() string
}

// Client performs JSON requests against one backend.
type Client struct {
	HTTPClient *http.Client
	Tokens     TokenSourceInterface
}

// New creates *Client. Nil httpClient gets a logging client with DefaultTimeout.
func New(httpClient *http.Client, tokens TokenSourceInterface) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: logger.NewTransport(nil),
		}
	}
	return &Client{HTTPClient: httpClient, Tokens: tokens}
}

// Request describes one backend call.
type Request struct {
	Method      string
	URL         string
	Body        io.Reader
	ContentType string
	// Authenticated attaches bearer token when one is present.
	Authenticated bool
}

// JSONBody encodes v as request body.
func JSONBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// Do sends request and decodes JSON response into out (out may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	r, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return err
	}
	r.Header.Set(AcceptKey, ApplicationJSONKey)
	if req.ContentType != "" {
		r.Header.Set(ContentTypeKey, req.ContentType)
	}
	// токен читается при каждом вызове: ротация учитывается без перезапуска
	if req.Authenticated && c.Tokens != nil {
		if token := c.Tokens.Get(); token != "" {
			r.Header.Set(AuthorizationKey, BearerPrefix+token)
		}
	}

	resp, err := c.HTTPClient.Do(r)
	if err != nil {
		return &APIError{StatusCode: 0, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: 0, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

// parseDetail extracts human readable message from error body.
// String detail is returned as is, list of validation errors gives the first msg.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return strings.TrimSpace(s)
		}
		var list []validationDetail
		if err := json.Unmarshal(eb.Detail, &list); err == nil && len(list) > 0 && list[0].Msg != "" {
			return list[0].Msg
		}
	}
	return ""
}
