// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the throttled HTTP client shared by the
// metadata sources and the translator.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const (
	defaultMaxRetries = 5
	maxErrorBody      = 512
)

// Options configures a Client.
type Options struct {
	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond caps the outgoing request rate. Zero or negative
	// disables throttling.
	RequestsPerSecond float64

	// MaxRetries is the number of retries on HTTP 429. Zero uses the default (5).
	MaxRetries int

	// UserAgent is set on every request that does not already carry one.
	UserAgent string

	// Logger receives retry notices. Nil discards them.
	Logger *zap.Logger
}

// Client wraps http.Client with a token-bucket rate limit and retry on
// HTTP 429. NCBI E-utilities reject clients above 3 req/s (10 with a key).
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:       &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: maxRetries,
		userAgent:  opts.UserAgent,
		logger:     logger,
	}
}

// Do executes req, waiting for the rate limiter before every attempt.
// On HTTP 429 the body is drained and the request retried after an
// exponential backoff (RetryBaseDelay doubling each attempt) or the
// server's Retry-After, whichever is longer. After exhausting retries the
// last 429 response is returned so the caller can inspect it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rewinding request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := c.http.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if after := retryAfter(resp.Header.Get("Retry-After")); after > backoff {
			backoff = after
		}
		c.logger.Info("rate limited, retrying",
			zap.String("host", req.URL.Host),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// Get fetches url and returns the response body. Any status other than
// 200 is an error that quotes the start of the body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
