package mock

import "github.com/fwojciec/storelens"

var _ storelens.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of storelens.PageParser.
type PageParser struct {
	ParseHeroProductsFn   func(html, pageURL string) ([]storelens.Product, error)
	ParseBrandInfoFn      func(html, pageURL string) (*storelens.BrandInfo, error)
	ParsePolicyFn         func(html, pageURL string, kind storelens.PolicyKind) (*storelens.Policy, error)
	ParseFAQsFn           func(html string) ([]storelens.FAQ, error)
	ParseImportantLinksFn func(html, pageURL string) ([]storelens.ImportantLink, error)
	ParseTextFn           func(html string) (string, error)
}

func (p *PageParser) ParseHeroProducts(html, pageURL string) ([]storelens.Product, error) {
	return p.ParseHeroProductsFn(html, pageURL)
}

func (p *PageParser) ParseBrandInfo(html, pageURL string) (*storelens.BrandInfo, error) {
	return p.ParseBrandInfoFn(html, pageURL)
}

func (p *PageParser) ParsePolicy(html, pageURL string, kind storelens.PolicyKind) (*storelens.Policy, error) {
	return p.ParsePolicyFn(html, pageURL, kind)
}

func (p *PageParser) ParseFAQs(html string) ([]storelens.FAQ, error) {
	return p.ParseFAQsFn(html)
}

func (p *PageParser) ParseImportantLinks(html, pageURL string) ([]storelens.ImportantLink, error) {
	return p.ParseImportantLinksFn(html, pageURL)
}

func (p *PageParser) ParseText(html string) (string, error) {
	return p.ParseTextFn(html)
}

var _ storelens.CatalogParser = (*CatalogParser)(nil)

// CatalogParser is a mock implementation of storelens.CatalogParser.
type CatalogParser struct {
	ParseCatalogFn func(body string, baseURL string) ([]storelens.Product, error)
}

func (p *CatalogParser) ParseCatalog(body string, baseURL string) ([]storelens.Product, error) {
	return p.ParseCatalogFn(body, baseURL)
}

var _ storelens.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of storelens.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html, pageURL string) (*storelens.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html, pageURL string) (*storelens.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
