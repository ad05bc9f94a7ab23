// Package extract builds brand insights for a storefront by running
// independent category extractors against a shared, memoised view of its
// pages and aggregating their results.
package extract

import (
	"context"

	"github.com/fwojciec/storelens"
)

// Extractors returns the default extractor for every category, in
// aggregation order. content may be nil, in which case brand stories are
// not extracted.
func Extractors(parser storelens.PageParser, catalog storelens.CatalogParser, content storelens.ContentExtractor) []storelens.SectionExtractor {
	return []storelens.SectionExtractor{
		&CatalogExtractor{Parser: catalog},
		&HeroProductExtractor{Parser: parser},
		&BrandInfoExtractor{Parser: parser, Content: content},
		&PolicyExtractor{Parser: parser},
		&FAQExtractor{Parser: parser},
		&ImportantLinkExtractor{Parser: parser},
		&SocialHandleExtractor{},
		&ContactInfoExtractor{Parser: parser},
	}
}

// statusError describes a non-2xx response as a category failure reason.
func statusError(resp *storelens.Response) error {
	return storelens.Errorf(storelens.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, resp.URL)
}

// homepage returns the storefront homepage, treating a non-2xx status as an
// error.
func homepage(ctx context.Context, site storelens.Site) (*storelens.Response, error) {
	resp, err := site.Get(ctx, "")
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, statusError(resp)
	}
	return resp, nil
}

// probe returns the first candidate path that answers with 2xx and for which
// accept returns true. Network errors and non-2xx responses are skipped.
// It returns nil if no candidate qualifies, along with the number of
// candidates that failed at the network level and the last such error.
func probe(ctx context.Context, site storelens.Site, paths []string, accept func(*storelens.Response) bool) (*storelens.Response, int, error) {
	var failures int
	var lastErr error
	for _, path := range paths {
		if ctx.Err() != nil {
			return nil, failures, ctx.Err()
		}
		resp, err := site.Get(ctx, path)
		if err != nil {
			failures++
			lastErr = err
			continue
		}
		if !resp.OK() {
			continue
		}
		if accept == nil || accept(resp) {
			return resp, failures, nil
		}
	}
	return nil, failures, lastErr
}
