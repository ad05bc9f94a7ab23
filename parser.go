package storelens

// PageParser extracts structured data from storefront HTML.
// Implementations are pure: the same input always yields the same output.
type PageParser interface {
	// ParseHeroProducts returns up to MaxHeroProducts products linked from
	// the page, in document order.
	ParseHeroProducts(html, pageURL string) ([]Product, error)

	// ParseBrandInfo returns the brand name and description. The name falls
	// back to the authority of pageURL and is never empty.
	ParseBrandInfo(html, pageURL string) (*BrandInfo, error)

	// ParsePolicy returns the policy found in the page's main content
	// container, or nil if the page has no recognisable container.
	ParsePolicy(html, pageURL string, kind PolicyKind) (*Policy, error)

	// ParseFAQs returns question/answer pairs found in FAQ-like containers.
	ParseFAQs(html string) ([]FAQ, error)

	// ParseImportantLinks returns categorised links in document order,
	// deduplicated by absolute URL and capped at MaxImportantLinks.
	ParseImportantLinks(html, pageURL string) ([]ImportantLink, error)

	// ParseText returns the page's text content.
	ParseText(html string) (string, error)
}

// CatalogParser decodes a storefront catalog payload.
type CatalogParser interface {
	// ParseCatalog maps every decodable product record in body to a Product.
	// Individual bad records are skipped; an undecodable payload is an error.
	ParseCatalog(body string, baseURL string) ([]Product, error)
}

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	Title string
	Text  string
}

// ContentExtractor extracts the main readable content from a page,
// removing navigation and other boilerplate.
type ContentExtractor interface {
	Extract(html, pageURL string) (*ExtractResult, error)
}
