package storelens

import (
	"context"
	"net/http"
)

// Response is the outcome of a single GET against a storefront URL.
type Response struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the response has a 2xx status.
// A non-2xx response means "not found for this URL"; callers decide whether
// that is fatal.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Fetcher retrieves raw page content over HTTP.
// Implementations are safe for concurrent use and share one connection pool.
type Fetcher interface {
	// Fetch performs a GET against url. Transient network failures are
	// retried by the implementation; a non-2xx status is returned as a
	// Response, not as an error. The context controls cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases idle connections.
	Close() error
}
