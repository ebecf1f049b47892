package api

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

// HTTPClient holds the base URL and the underlying *http.Client.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewHTTPClient creates an HTTPClient with a per-request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

// StatusError is returned for a non-2xx response. Body keeps the raw payload
// so callers can decode an error envelope from it.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// ErrTimeout marks a request that exceeded the client deadline.
var ErrTimeout = errors.New("request timed out")

// NetworkError wraps a transport-level failure (DNS, refused connection, reset).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// Request sends method+endpoint with the given query and JSON body and
// decodes a 2xx JSON response into response.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, query url.Values, headers map[string]string, body interface{}, response interface{}) error {
	resBody, err := c.do(ctx, method, endpoint, query, headers, body)
	if err != nil {
		return err
	}
	if response != nil && len(resBody) > 0 {
		if err := json.Unmarshal(resBody, response); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}

// RequestRaw is Request without a body or decoding; it returns the 2xx payload.
func (c *HTTPClient) RequestRaw(ctx context.Context, method, endpoint string, query url.Values, headers map[string]string) ([]byte, error) {
	return c.do(ctx, method, endpoint, query, headers, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, query url.Values, headers map[string]string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	target := c.BaseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, withoutURL(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status, Body: resBody}
	}
	return resBody, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	err = withoutURL(err)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &NetworkError{Err: err}
}

// withoutURL drops the request URL carried by *url.Error; its query holds the
// service key.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
