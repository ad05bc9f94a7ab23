package extract

import (
	"unicode/utf8"

	"github.com/fwojciec/storelens"
)

// Ensure LongestContent implements storelens.ContentExtractor at compile time.
var _ storelens.ContentExtractor = LongestContent(nil)

// LongestContent runs every extractor over a page and keeps the result
// with the most text. An error is returned only when every extractor fails.
type LongestContent []storelens.ContentExtractor

// Extract implements storelens.ContentExtractor.
func (l LongestContent) Extract(rawHTML, pageURL string) (*storelens.ExtractResult, error) {
	var best *storelens.ExtractResult
	var lastErr error
	for _, x := range l {
		r, err := x.Extract(rawHTML, pageURL)
		if err != nil {
			lastErr = err
			continue
		}
		if best == nil || utf8.RuneCountInString(r.Text) > utf8.RuneCountInString(best.Text) {
			best = r
		}
	}
	if best != nil {
		return best, nil
	}
	if lastErr == nil {
		lastErr = storelens.Errorf(storelens.EINTERNAL, "no content extractors configured")
	}
	return nil, lastErr
}
