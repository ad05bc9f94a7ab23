package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/storelens"
	"github.com/fwojciec/storelens/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements storelens.ContentExtractor at compile time.
var _ storelens.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to pull the main text out of content pages
// such as a storefront's about page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and the readable main text with
// whitespace collapsed.
func (e *Extractor) Extract(rawHTML, pageURL string) (*storelens.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, storelens.Errorf(storelens.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return nil, storelens.Errorf(storelens.EINVALID, "invalid page URL: %v", err)
		}
		u = parsed
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	return &storelens.ExtractResult{
		Title: goquery.CleanText(article.Title),
		Text:  goquery.CleanText(article.TextContent),
	}, nil
}
