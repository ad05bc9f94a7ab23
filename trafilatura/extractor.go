package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/storelens"
	"github.com/fwojciec/storelens/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements storelens.ContentExtractor at compile time.
var _ storelens.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main text of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and main text with whitespace collapsed.
func (e *Extractor) Extract(rawHTML, pageURL string) (*storelens.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, storelens.Errorf(storelens.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		ExcludeTables:  true,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, storelens.Errorf(storelens.EINVALID, "invalid page URL: %v", err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &storelens.ExtractResult{
		Title: goquery.CleanText(result.Metadata.Title),
		Text:  goquery.CleanText(result.ContentText),
	}, nil
}
