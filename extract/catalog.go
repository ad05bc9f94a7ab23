package extract

import (
	"context"

	"github.com/fwojciec/storelens"
)

// CatalogExtractor reads the full product catalog from the storefront's
// public catalog endpoint.
type CatalogExtractor struct {
	Parser storelens.CatalogParser
}

func (x *CatalogExtractor) Category() storelens.Category { return storelens.CategoryCatalog }

func (x *CatalogExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	resp, err := site.Get(ctx, storelens.CatalogPath)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, statusError(resp)
	}

	products, err := x.Parser.ParseCatalog(resp.Body, site.BaseURL())
	if err != nil {
		return nil, err
	}
	return storelens.Catalog{Products: products}, nil
}
