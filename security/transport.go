// Package security provides client-side guards for outbound provider
// calls. The core pipeline defines no timeouts or retries of its own;
// both are delegated to the HTTP transport, and this package is where
// the transport is shaped: a token-bucket rate limit on provider calls
// sits here, while per-call timeouts belong on the http.Client itself.
package security

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// Transport wraps an http.RoundTripper with a token-bucket rate limit.
// Requests wait for a slot and abort with the request context's error if
// it expires first. A Transport is safe for concurrent use.
type Transport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewTransport creates a rate-limited transport over base. A nil base
// uses http.DefaultTransport. requestsPerSecond must be positive; burst
// defaults to requestsPerSecond when zero.
func NewTransport(base http.RoundTripper, requestsPerSecond, burst int, logger *slog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if burst <= 0 {
		burst = requestsPerSecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:  logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		t.logger.Warn("provider call aborted waiting for rate limit", "host", req.URL.Host, "error", err)
		return nil, err
	}
	return t.base.RoundTrip(req)
}
