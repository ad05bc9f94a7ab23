package extract

import (
	"context"

	"github.com/fwojciec/storelens"
)

// FAQExtractor runs a two-stage pipeline: structured FAQ pages first, then
// canned entries matched against homepage keywords when no page yields any.
type FAQExtractor struct {
	Parser storelens.PageParser
}

func (x *FAQExtractor) Category() storelens.Category { return storelens.CategoryFAQs }

func (x *FAQExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	faqs, err := x.structured(ctx, site)
	if err != nil {
		return nil, err
	}
	if len(faqs) == 0 {
		faqs = x.keywordFallback(ctx, site)
	}
	return storelens.FAQSet{FAQs: faqs}, nil
}

// structured returns the FAQs of the first candidate page that has any.
func (x *FAQExtractor) structured(ctx context.Context, site storelens.Site) ([]storelens.FAQ, error) {
	var faqs []storelens.FAQ
	_, _, _ = probe(ctx, site, storelens.FAQPaths, func(resp *storelens.Response) bool {
		found, err := x.Parser.ParseFAQs(resp.Body)
		if err != nil || len(found) == 0 {
			return false
		}
		faqs = found
		return true
	})
	if faqs == nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return faqs, nil
}

// keywordFallback derives canned FAQs from homepage text. A homepage that
// cannot be read yields none.
func (x *FAQExtractor) keywordFallback(ctx context.Context, site storelens.Site) []storelens.FAQ {
	resp, err := homepage(ctx, site)
	if err != nil {
		return nil
	}
	text, err := x.Parser.ParseText(resp.Body)
	if err != nil {
		return nil
	}
	return storelens.MatchKeywordFAQs(text)
}
