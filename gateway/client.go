// Package gateway is the HTTP client for the external payment gateway, the
// system of record for money movement. It covers the three resources the
// checkout flow needs: customers, payments and subscriptions.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// LookupMaxAttempts bounds the retry budget for idempotent GETs.
	// Writes are never retried.
	LookupMaxAttempts int
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxAttempts int
	// retryBase is the first backoff delay; doubled per attempt.
	retryBase time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	attempts := cfg.LookupMaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		maxAttempts: attempts,
		retryBase:   200 * time.Millisecond,
	}
}

// APIError is a non-2xx gateway response. Raw keeps the verbatim body for
// diagnostics; Errors is the gateway's structured error list when it sent one.
type APIError struct {
	StatusCode int
	Raw        []byte
	Errors     []ErrorItem `json:"errors"`
}

type ErrorItem struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("gateway returned %d: %s (%s)", e.StatusCode, e.Errors[0].Description, e.Errors[0].Code)
	}
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Raw)
}

// do issues one request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Raw: raw}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// get retries transport failures and 5xx responses with exponential backoff,
// up to the configured attempt budget. Only safe for idempotent reads.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	delay := c.retryBase
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode < 500 {
			return err
		}
		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}
