// Package rest provides the shared HTTP transport for the TM1 REST API.
// All sibling service facades issue their requests through one Client,
// which owns retries, rate limiting, circuit breaking, and authentication.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/planops/tm1-mcp-server/internal/infra"
	"github.com/planops/tm1-mcp-server/metrics"
)

const (
	// APIPrefix is the TM1 OData root; every request path is relative to it
	APIPrefix = "/api/v1"

	// MaxConcurrentRequests limits parallel API calls
	MaxConcurrentRequests = 5
)

// Client is the low-level TM1 REST transport
type Client struct {
	config         *Config
	httpClient     *http.Client
	logger         *slog.Logger
	circuitBreaker *infra.CircuitBreaker
	semaphore      chan struct{}
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a TM1 REST transport for the given configuration
func NewClient(config *Config, opts ...ClientOption) *Client {
	c := &Client{
		config:         config,
		httpClient:     newHTTPClient(config.Timeout),
		logger:         slog.Default(),
		circuitBreaker: infra.NewCircuitBreaker(),
		semaphore:      make(chan struct{}, MaxConcurrentRequests),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get issues a GET request against the API path
func (c *Client) Get(ctx context.Context, path string) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body []byte) ([]byte, int, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Patch issues a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body []byte) ([]byte, int, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE request against the API path
func (c *Client) Delete(ctx context.Context, path string) ([]byte, int, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// CircuitBreakerStats returns the current circuit breaker state
func (c *Client) CircuitBreakerStats() infra.CircuitBreakerStats {
	return c.circuitBreaker.Stats()
}

// do performs an HTTP request with circuit breaking, rate limiting, and
// retries. Any HTTP response below 500 is returned to the caller together
// with its status code; the facades decide the error mapping. Network
// failures, 5xx, and 429 are retried with exponential backoff.
func (c *Client) do(ctx context.Context, method, path string, reqBody []byte) ([]byte, int, error) {
	if !c.circuitBreaker.Allow() {
		stats := c.circuitBreaker.Stats()
		return nil, 0, &infra.ErrCircuitOpen{
			State:    stats.State,
			RetryAt:  stats.LastFailure.Add(30 * time.Second),
			Failures: stats.ConsecutiveFails,
		}
	}

	select {
	case c.semaphore <- struct{}{}:
		defer func() { <-c.semaphore }()
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("context canceled while waiting for rate limiter: %w", ctx.Err())
	}

	url := c.config.Address + APIPrefix + path

	maxRetry := c.config.MaxRetries
	if maxRetry <= 0 {
		maxRetry = 1
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt < maxRetry; attempt++ {
		if attempt > 0 {
			metrics.HTTPRetriesTotal.WithLabelValues(method).Inc()
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, 0, fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			}
		}

		// Fresh request per attempt; the body reader is consumed on send
		var reader io.Reader
		if reqBody != nil {
			reader = bytes.NewReader(reqBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if auth := c.config.AuthHeader(); auth != "" {
			req.Header.Set("Authorization", auth)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Warn("TM1 request failed, retrying",
				"attempt", attempt+1,
				"method", method,
				"path", path,
				"error", err)
			continue
		}

		body, err := readAndClose(resp)
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		// Handle rate limiting with Retry-After header
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
					case <-ctx.Done():
						return nil, 0, ctx.Err()
					}
				}
			}
			continue
		}

		// Server errors are retried
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(body), 200))
			c.logger.Warn("TM1 server error, retrying",
				"attempt", attempt+1,
				"method", method,
				"path", path,
				"status", resp.StatusCode)
			continue
		}

		c.circuitBreaker.RecordSuccess()
		metrics.RecordHTTPRequest(method, resp.StatusCode, time.Since(start).Seconds())
		return body, resp.StatusCode, nil
	}

	c.circuitBreaker.RecordFailure()
	metrics.RecordHTTPRequest(method, 0, time.Since(start).Seconds())
	return nil, 0, lastErr
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
