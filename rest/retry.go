package rest

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"time"
)

// RetryPolicy applies to idempotent requests without a body only.
// Authentication statuses are never retried here: that is the authority's job.
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	Jitter         float64
	RetryOn        []int
}

// NoRetry disables transport level retries.
var NoRetry = RetryPolicy{}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     2,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Multiplier:     2.0,
		Jitter:         0.1,
		RetryOn: []int{
			http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// Backoff returns the wait before the given retry (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	multiplier := p.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	backoff := float64(p.InitialBackoff) * math.Pow(multiplier, float64(attempt-1))
	if p.MaxBackoff > 0 && backoff > float64(p.MaxBackoff) {
		backoff = float64(p.MaxBackoff)
	}
	if p.Jitter > 0 {
		backoff += backoff * p.Jitter * (rand.Float64()*2 - 1)
	}
	return time.Duration(backoff)
}

type retryTransport struct {
	log    *slog.Logger
	next   http.RoundTripper
	policy RetryPolicy
}

func newRetryTransport(log *slog.Logger, next http.RoundTripper, policy RetryPolicy) http.RoundTripper {
	if policy.MaxRetries <= 0 {
		return next
	}
	return &retryTransport{log: log, next: next, policy: policy}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !retryable(req) {
		return t.next.RoundTrip(req)
	}

	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; attempt <= t.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(t.policy.Backoff(attempt)):
			}
			t.log.Debug("Retrying request", "method", req.Method, "path", req.URL.Path, "attempt", attempt)
		}

		resp, err = t.next.RoundTrip(req.Clone(req.Context()))
		if err != nil {
			if transient(err) && attempt < t.policy.MaxRetries {
				continue
			}
			return nil, err
		}
		if !slices.Contains(t.policy.RetryOn, resp.StatusCode) || attempt == t.policy.MaxRetries {
			return resp, nil
		}
		_ = resp.Body.Close()
	}
	return resp, err
}

func retryable(req *http.Request) bool {
	if req.Body != nil && req.Body != http.NoBody {
		return false
	}
	return req.Method == http.MethodGet || req.Method == http.MethodHead
}

func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
