// Package external holds the HTTP plumbing shared by the geocoder and
// routing adapters: a retrying, rate-limited GET with a linear backoff.
package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

// retryableError marks a transport/HTTP failure eligible for another
// attempt, as distinct from a parse or validation failure.
type retryableError struct {
	message string
}

func (e *retryableError) Error() string { return e.message }

// Getter issues retrying, rate-limited HTTP GET requests against a single
// base URL. Each external service (geocoder, router) wraps a Getter with
// its own request construction and response parsing.
type Getter struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	retryCount  int
	clock       shared.Clock
}

// NewGetter builds a Getter with a per-request timeout, retryCount
// additional attempts beyond the first, and the given clock (use
// shared.NewRealClock() in production, a MockClock in tests).
func NewGetter(timeout time.Duration, retryCount int, clock shared.Clock) *Getter {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Getter{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(1), 2), // polite default: ~1 req/s, burst 2
		retryCount:  retryCount,
		clock:       clock,
	}
}

// Get performs an HTTP GET against url, retrying transient failures
// (network errors and 5xx/429 responses) with a linear backoff of
// 0.3*(attempt+1) seconds, up to retryCount additional attempts beyond
// the first. headers are set on every attempt. Returns the response body
// on a 2xx result.
func (g *Getter) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= g.retryCount; attempt++ {
		if err := g.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := g.httpClient.Do(req)
		if err != nil {
			lastErr = &retryableError{message: fmt.Sprintf("network error: %v", err)}
			if !g.sleepForRetry(ctx, attempt) {
				break
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("read response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = &retryableError{message: fmt.Sprintf("upstream status %d", resp.StatusCode)}
			if !g.sleepForRetry(ctx, attempt) {
				break
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, shared.Newf(shared.ErrExternalService, "upstream returned status %d", resp.StatusCode)
		}

		return body, nil
	}

	return nil, shared.Wrap(shared.ErrExternalService, "retries exhausted", lastErr)
}

// sleepForRetry sleeps the linear backoff for the attempt just made and
// reports whether another attempt should be made.
func (g *Getter) sleepForRetry(ctx context.Context, attempt int) bool {
	if attempt >= g.retryCount {
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	backoff := time.Duration(float64(300*time.Millisecond) * float64(attempt+1))
	g.clock.Sleep(backoff)
	return true
}
