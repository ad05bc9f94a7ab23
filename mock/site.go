package mock

import (
	"context"

	"github.com/fwojciec/storelens"
)

var _ storelens.Site = (*Site)(nil)

// Site is a mock implementation of storelens.Site.
type Site struct {
	BaseURLFn func() string
	GetFn     func(ctx context.Context, path string) (*storelens.Response, error)
}

func (s *Site) BaseURL() string {
	return s.BaseURLFn()
}

func (s *Site) Get(ctx context.Context, path string) (*storelens.Response, error) {
	return s.GetFn(ctx, path)
}

var _ storelens.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor is a mock implementation of storelens.SectionExtractor.
type SectionExtractor struct {
	CategoryFn func() storelens.Category
	ExtractFn  func(ctx context.Context, site storelens.Site) (storelens.Section, error)
}

func (x *SectionExtractor) Category() storelens.Category {
	return x.CategoryFn()
}

func (x *SectionExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	return x.ExtractFn(ctx, site)
}
