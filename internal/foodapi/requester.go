package foodapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Requester is the generic JSON-over-HTTP transport the food API client is built on
type Requester interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status code: %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// HTTPRequester handles API requests over net/http
type HTTPRequester struct {
	httpClient *http.Client
	BaseURL    string
}

// NewHTTPRequester creates a requester for the API rooted at baseURL
func NewHTTPRequester(baseURL string, timeout time.Duration) *HTTPRequester {
	return &HTTPRequester{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Get decodes the JSON response of GET path into out
func (r *HTTPRequester) Get(ctx context.Context, path string, out interface{}) error {
	return r.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out, if out is not nil
func (r *HTTPRequester) Post(ctx context.Context, path string, body, out interface{}) error {
	return r.do(ctx, http.MethodPost, path, body, out)
}

// Delete issues DELETE path and discards the response body
func (r *HTTPRequester) Delete(ctx context.Context, path string) error {
	return r.do(ctx, http.MethodDelete, path, nil, nil)
}

func (r *HTTPRequester) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
