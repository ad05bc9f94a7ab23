package mock

import (
	"context"

	"github.com/fwojciec/storelens"
)

var _ storelens.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of storelens.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*storelens.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*storelens.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
