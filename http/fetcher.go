// Package http provides an HTTP implementation of storelens.Fetcher for
// fetching storefront pages and catalog payloads.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/fwojciec/storelens"
)

// Defaults for a Fetcher.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBodySize  = 10 << 20

	// DefaultUserAgent is a desktop Chrome user agent. Storefront CDNs
	// commonly refuse requests with library user agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// DefaultRetryDelays returns the backoff delays between fetch attempts:
// 1s, 2s (three attempts in total).
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Ensure Fetcher implements storelens.Fetcher at compile time.
var _ storelens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using HTTP GET requests. It does not execute
// JavaScript. A single Fetcher is safe for concurrent use and shares one
// connection pool across callers.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
	retryDelays []time.Duration
	limiter     *HostLimiter
	logf        LogFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for a single attempt, including reading the
// body. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays sets the delays between attempts. The number of attempts
// is len(delays)+1. Defaults to DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of body bytes read per response.
// Longer bodies are truncated.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithRateLimit limits requests to rps per host. Zero or negative disables
// limiting, which is the default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = NewHostLimiter(rps)
		} else {
			f.limiter = nil
		}
	}
}

// WithRetryLog sets a function called before each retry.
func WithRetryLog(fn LogFunc) Option {
	return func(f *Fetcher) {
		f.logf = fn
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 8

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// Fetch performs a GET against rawURL. Transient network errors and gateway
// responses (502, 503, 504) are retried with backoff. Any other response,
// including 4xx and 5xx, is returned without error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*storelens.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, storelens.Errorf(storelens.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	maxAttempts := len(f.retryDelays) + 1

	var resp *storelens.Response
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}

		resp, err = f.fetchOnce(ctx, rawURL)
		if !shouldRetry(ctx, resp, err) || attempt >= maxAttempts-1 {
			break
		}

		if f.logf != nil {
			f.logf("retry %s (attempt %d): %s", rawURL, attempt+2, retryReason(resp, err))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*storelens.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &storelens.Response{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

// shouldRetry reports whether an attempt failed in a way another attempt
// might fix.
func shouldRetry(ctx context.Context, resp *storelens.Response, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		return isTransient(err)
	}
	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// isTransient classifies network errors: timeouts, refused or reset
// connections, temporary DNS failures and connections dropped mid-response.
func isTransient(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout || dnsErr.IsTemporary
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}

func retryReason(resp *storelens.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
