package storelens

import "strings"

// LinkCategory classifies an important navigation link.
type LinkCategory string

// Supported link categories.
const (
	LinkOrderTracking LinkCategory = "order_tracking"
	LinkBlog          LinkCategory = "blog"
	LinkSupport       LinkCategory = "support"
	LinkContact       LinkCategory = "contact"
	LinkShipping      LinkCategory = "shipping"
	LinkAbout         LinkCategory = "about"
	LinkSizeGuide     LinkCategory = "size_guide"
	LinkCareers       LinkCategory = "careers"
	LinkPress         LinkCategory = "press"
)

// LinkKeywordGroup maps lower-case link-text keywords to a category.
type LinkKeywordGroup struct {
	Category LinkCategory
	Keywords []string
}

// LinkKeywordGroups is evaluated in order; the first group with a keyword
// contained in the link text wins.
var LinkKeywordGroups = []LinkKeywordGroup{
	{Category: LinkOrderTracking, Keywords: []string{"track", "order", "tracking"}},
	{Category: LinkBlog, Keywords: []string{"blog", "news", "articles"}},
	{Category: LinkSupport, Keywords: []string{"support", "help", "customer"}},
	{Category: LinkContact, Keywords: []string{"contact", "contact us"}},
	{Category: LinkShipping, Keywords: []string{"shipping", "delivery"}},
	{Category: LinkAbout, Keywords: []string{"about", "about us"}},
	{Category: LinkSizeGuide, Keywords: []string{"size", "guide", "chart"}},
	{Category: LinkCareers, Keywords: []string{"careers", "jobs", "work"}},
	{Category: LinkPress, Keywords: []string{"press", "media"}},
}

// ClassifyLinkText returns the category for visible link text, or false if
// no keyword group matches.
func ClassifyLinkText(text string) (LinkCategory, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}
	for _, g := range LinkKeywordGroups {
		for _, kw := range g.Keywords {
			if strings.Contains(text, kw) {
				return g.Category, true
			}
		}
	}
	return "", false
}

// IsPseudoLink reports whether href points nowhere a crawler can follow:
// script, mail and phone links or an in-page fragment.
func IsPseudoLink(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	if h == "" || strings.HasPrefix(h, "#") {
		return true
	}
	for _, scheme := range []string{"javascript:", "mailto:", "tel:"} {
		if strings.HasPrefix(h, scheme) {
			return true
		}
	}
	return false
}
