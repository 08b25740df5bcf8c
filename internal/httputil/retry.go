// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client used by generation backends.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/pdiddy/content-engine/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// RetryTransport retries requests answered with HTTP 429 (Too Many Requests)
// with exponential backoff. The delay starts at RetryBaseDelay and doubles
// each attempt: 10 s, 20 s, 40 s, 80 s, 160 s.
//
// A MaxRetries of 0 sends each request once; a negative value selects the
// default (5). On each 429 the response
// body is drained and closed before sleeping. If the request context is
// cancelled during a backoff wait RoundTrip returns ctx.Err(). After
// exhausting retries the last 429 response is returned so the caller can
// inspect it. Requests with a body are only retried when GetBody is set.
type RetryTransport struct {
	Base       http.RoundTripper
	MaxRetries int
	UserAgent  string
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	maxRetries := t.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		r, err := t.prepare(ctx, req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := base.RoundTrip(r)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if attempt >= maxRetries || (req.Body != nil && req.GetBody == nil) {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// prepare clones req for one attempt, rewinding the body on retries.
func (t *RetryTransport) prepare(ctx context.Context, req *http.Request, attempt int) (*http.Request, error) {
	r := req.Clone(ctx)
	if attempt > 0 && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = body
	}
	if t.UserAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.UserAgent)
	}
	return r, nil
}

// NewClient returns an HTTP client with the configured timeout and user agent
// whose transport retries rate-limited requests up to maxRetries times.
func NewClient(cfg types.HTTPConfig, maxRetries int) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &RetryTransport{
			MaxRetries: maxRetries,
			UserAgent:  cfg.UserAgent,
		},
	}
}
