package extract

import (
	"context"

	"github.com/fwojciec/storelens"
)

// HeroProductExtractor lists the products featured on the homepage.
type HeroProductExtractor struct {
	Parser storelens.PageParser
}

func (x *HeroProductExtractor) Category() storelens.Category { return storelens.CategoryHeroProducts }

func (x *HeroProductExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	resp, err := homepage(ctx, site)
	if err != nil {
		return nil, err
	}
	products, err := x.Parser.ParseHeroProducts(resp.Body, resp.URL)
	if err != nil {
		return nil, err
	}
	return storelens.HeroProducts{Products: products}, nil
}

// BrandInfoExtractor reads the brand name and description from the homepage
// and the brand story from the first reachable about page.
type BrandInfoExtractor struct {
	Parser  storelens.PageParser
	Content storelens.ContentExtractor
}

func (x *BrandInfoExtractor) Category() storelens.Category { return storelens.CategoryBrandInfo }

func (x *BrandInfoExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	resp, err := homepage(ctx, site)
	if err != nil {
		return nil, err
	}
	info, err := x.Parser.ParseBrandInfo(resp.Body, resp.URL)
	if err != nil {
		return nil, err
	}

	if x.Content != nil {
		info.Story = x.story(ctx, site)
	}
	return *info, nil
}

// story returns the readable text of the first about page with any, or
// empty string. Every problem along the way is a soft miss.
func (x *BrandInfoExtractor) story(ctx context.Context, site storelens.Site) string {
	var text string
	_, _, _ = probe(ctx, site, storelens.AboutPaths, func(resp *storelens.Response) bool {
		res, err := x.Content.Extract(resp.Body, resp.URL)
		if err != nil || res.Text == "" {
			return false
		}
		text = storelens.Truncate(res.Text, storelens.MaxBrandStoryLength)
		return true
	})
	return text
}

// ImportantLinkExtractor collects categorised navigation links from the
// homepage.
type ImportantLinkExtractor struct {
	Parser storelens.PageParser
}

func (x *ImportantLinkExtractor) Category() storelens.Category {
	return storelens.CategoryImportantLinks
}

func (x *ImportantLinkExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	resp, err := homepage(ctx, site)
	if err != nil {
		return nil, err
	}
	links, err := x.Parser.ParseImportantLinks(resp.Body, resp.URL)
	if err != nil {
		return nil, err
	}
	return storelens.LinkSet{Links: links}, nil
}

// SocialHandleExtractor scans the raw homepage markup for social profile
// links.
type SocialHandleExtractor struct{}

func (x *SocialHandleExtractor) Category() storelens.Category {
	return storelens.CategorySocialHandles
}

func (x *SocialHandleExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	resp, err := homepage(ctx, site)
	if err != nil {
		return nil, err
	}
	return storelens.SocialSet{Handles: storelens.FindSocialHandles(resp.Body)}, nil
}
