package extract

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/fwojciec/storelens"
	"golang.org/x/sync/singleflight"
)

// Ensure Storefront implements storelens.Site at compile time.
var _ storelens.Site = (*Storefront)(nil)

// Storefront is the per-request view of one storefront. Every URL is
// fetched at most once: concurrent callers share the in-flight request and
// later callers get the memoised result. A Storefront must not outlive the
// extraction it was created for.
type Storefront struct {
	fetcher storelens.Fetcher
	baseURL string

	group singleflight.Group

	mu   sync.Mutex
	memo map[string]fetchResult
}

type fetchResult struct {
	resp *storelens.Response
	err  error
}

// NewStorefront creates a Storefront for baseURL backed by fetcher.
func NewStorefront(fetcher storelens.Fetcher, baseURL string) *Storefront {
	return &Storefront{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		memo:    make(map[string]fetchResult),
	}
}

// BaseURL returns the storefront base URL without a trailing slash.
func (s *Storefront) BaseURL() string {
	return s.baseURL
}

// URL returns the absolute URL for path ("" is the homepage).
func (s *Storefront) URL(path string) string {
	if path == "" {
		return s.baseURL
	}
	return storelens.JoinPath(s.baseURL, path)
}

// Get fetches path relative to the base URL. Results are memoised, except
// failures caused by the caller's context ending.
func (s *Storefront) Get(ctx context.Context, path string) (*storelens.Response, error) {
	url := s.URL(path)
	if r, ok := s.cached(url); ok {
		return r.resp, r.err
	}

	v, _, _ := s.group.Do(url, func() (any, error) {
		// A flight for url may have landed between the check above and Do.
		if r, ok := s.cached(url); ok {
			return r, nil
		}

		resp, err := s.fetcher.Fetch(ctx, url)
		r := fetchResult{resp: resp, err: err}
		if !isContextError(err) {
			s.mu.Lock()
			s.memo[url] = r
			s.mu.Unlock()
		}
		return r, nil
	})
	r := v.(fetchResult)
	return r.resp, r.err
}

func (s *Storefront) cached(url string) (fetchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.memo[url]
	return r, ok
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
