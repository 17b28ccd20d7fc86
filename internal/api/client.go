package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fallback messages when the backend gives us nothing usable.
const (
	genericErrorMessage = "An error occurred"
	networkErrorMessage = "Network error"
)

// Error is the single failure shape every call returns: a user-displayable
// message. The raw HTTP status is deliberately not carried; callers render
// the message and nothing else.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Client talks to the lost & found backend API. All state it holds is
// immutable after construction; bearer tokens are passed per call.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string, timeout time.Duration) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// NewWithHTTPClient is used by tests to point the client at a fake backend.
func NewWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do performs one request against the backend. The body is serialized only
// for mutating methods; the bearer token is attached only when present. Any
// failure comes back as *Error with a displayable message, never a status.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var r io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encoding request: %v", err)}
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *Client) setCommonHeaders(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Message: fmt.Sprintf("decoding response: %v", err)}
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	if strings.TrimSpace(eb.Error) != "" {
		return &Error{Message: eb.Error}
	}
	return &Error{Message: genericErrorMessage}
}

func transportError(err error) error {
	if msg := err.Error(); msg != "" {
		return &Error{Message: msg}
	}
	return &Error{Message: networkErrorMessage}
}

// decodeList accepts both shapes the backend answers list endpoints with: a
// bare array, or an object wrapping the array under a known key. The variant
// check lives here and nowhere else.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, &Error{Message: fmt.Sprintf("decoding response: %v", err)}
		}
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, &Error{Message: fmt.Sprintf("decoding response: %v", err)}
	}
	inner, ok := wrapper[key]
	if !ok {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, &Error{Message: fmt.Sprintf("decoding response: %v", err)}
	}
	return list, nil
}
