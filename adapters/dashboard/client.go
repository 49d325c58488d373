// Package dashboard provides the HTTP adapter for the platform's
// organization-level API: paginated usage logs and the admin directory.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Backoff doubles from 1s and never waits longer than 30s.
const (
	baseRetryDelay = time.Second
	maxRetryDelay  = 30 * time.Second
)

// Client provides HTTP communication with the dashboard platform.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	orgID      string
	perPage    int
	maxRetries int
	sleep      func(time.Duration)
	logger     zerolog.Logger
}

// ClientConfig configures the dashboard client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	OrgID   string
	Timeout time.Duration
	PerPage int

	// MaxRetries counts additional attempts after the first request.
	// Zero disables retries.
	MaxRetries int

	// Sleep replaces time.Sleep between retries (tests pass a recorder).
	Sleep func(time.Duration)

	Logger zerolog.Logger
}

// NewClient creates a dashboard API client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	perPage := cfg.PerPage
	if perPage == 0 {
		perPage = 1000
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		orgID:      cfg.OrgID,
		perPage:    perPage,
		maxRetries: cfg.MaxRetries,
		sleep:      sleep,
		logger:     cfg.Logger,
	}
}

// get performs one GET against an absolute URL with the retry policy
// applied, decoding the response body into result. The response
// headers are returned for cursor inspection.
func (c *Client) get(ctx context.Context, rawURL string, result interface{}) (http.Header, error) {
	maxAttempts := c.maxRetries + 1

	var lastErr error
	attempts := 0
	for attempts < maxAttempts {
		hdr, err := c.getOnce(ctx, rawURL, result)
		attempts++
		if err == nil {
			return hdr, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
		if attempts == maxAttempts || ctx.Err() != nil {
			break
		}

		delay := RetryDelay(attempts)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
			delay = apiErr.RetryAfter
		}
		c.logger.Warn().
			Int("attempt", attempts).
			Dur("delay", delay).
			Err(err).
			Msg("transient fetch failure, retrying")
		c.sleep(delay)
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}

func (c *Client) getOnce(ctx context.Context, rawURL string, result interface{}) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp.Header, nil
}

// APIError represents a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration // parsed Retry-After hint, 0 when absent
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dashboard error %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether the failure may clear up on its own:
// rate limits (429) and server errors (5xx). Other 4xx responses are
// permanent and must not be retried.
func (e *APIError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsTransient returns true if err is a retryable platform response.
func IsTransient(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Transient()
}

// retryable additionally admits transport failures, which may heal
// between attempts.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// RetryDelay returns the wait before retry attempt n (1-based).
// This is a PURE function.
func RetryDelay(attempt int) time.Duration {
	delay := baseRetryDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}

// parseRetryAfter reads the delay-seconds form of the header. Other
// forms parse as 0 and fall back to the computed backoff.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
