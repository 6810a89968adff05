// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package analytics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/logging"
)

// maxErrorBodySize limits how much of a failed response body is read.
const maxErrorBodySize = 64 * 1024 // 64KB

// maxRetryDelay caps a single backoff wait, including server-sent Retry-After.
const maxRetryDelay = 30 * time.Second

var (
	// ErrDecode marks a 200 response whose body could not be decoded.
	ErrDecode = errors.New("undecodable runReport response")

	// ErrThrottled is returned when the client-side limiter cannot grant a
	// request slot before the context deadline.
	ErrThrottled = errors.New("client-side rate limit would exceed deadline")
)

// Runner runs one report query. Client and CircuitBreakerClient implement it;
// tests substitute fakes.
type Runner interface {
	RunReport(ctx context.Context, req *RunReportRequest) (*RunReportResponse, error)
}

// APIError is a non-2xx response from the Data API.
type APIError struct {
	StatusCode int
	Status     string // canonical code, e.g. INVALID_ARGUMENT
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("analytics API error %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("analytics API error %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the failure is on the service side.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// IsUnavailable reports whether err means the service could not answer in
// time: deadline exceeded, network failure, 5xx, exhausted 429 retries,
// client-side throttling or an open circuit. Caller cancellation is not
// unavailability.
func IsUnavailable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrThrottled) || errors.Is(err, ErrCircuitOpen) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// Client calls the runReport method of the Data API.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	baseURL        string
	property       string
	httpClient     *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a client for cfg's property. httpClient carries
// authentication; nil uses an unauthenticated client with cfg.RequestTimeout.
func NewClient(cfg *config.AnalyticsConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		property:       PropertyName(cfg.PropertyID),
		httpClient:     httpClient,
		limiter:        rate.NewLimiter(limit, burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: time.Second,
	}
}

// PropertyName returns the resource name for a numeric property id.
func PropertyName(id string) string {
	if strings.HasPrefix(id, "properties/") {
		return id
	}
	return "properties/" + id
}

// RunReport posts req and decodes the report. An empty req.Property uses the
// client's configured property.
func (c *Client) RunReport(ctx context.Context, req *RunReportRequest) (*RunReportResponse, error) {
	if req == nil {
		return nil, errors.New("nil runReport request")
	}
	property := req.Property
	if property == "" {
		property = c.property
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode runReport request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/%s:runReport", c.baseURL, property)
	resp, err := c.doRequestWithRetry(ctx, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("runReport %s: %w", property, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("runReport %s: %w", property, newAPIError(resp))
	}

	var out RunReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("runReport %s: %w: %w", property, ErrDecode, err)
	}
	return &out, nil
}

// doRequestWithRetry posts payload, retrying 429 and 503 with exponential
// backoff (1s, 2s, 4s, ...). A numeric Retry-After header overrides the delay.
// The final retryable response is returned as-is for the caller to report.
func (c *Client) doRequestWithRetry(ctx context.Context, endpoint string, payload []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: %v", ErrThrottled, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if !retryableStatus(resp.StatusCode) || attempt >= c.maxRetries {
			return resp, nil
		}
		_ = resp.Body.Close()

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds >= 0 {
			delay = time.Duration(seconds) * time.Second
		}
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}

		logging.Ctx(ctx).Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Analytics API throttled, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// googleError is the error envelope returned by Google APIs.
type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// newAPIError builds an APIError from a failed response, reading at most
// maxErrorBodySize bytes.
func newAPIError(resp *http.Response) *APIError {
	body := readBodyForError(resp.Body)
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope googleError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Status = envelope.Error.Status
		apiErr.Message = envelope.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
