package storelens

import "strings"

// CatalogPath is the storefront's public catalog endpoint.
const CatalogPath = "/products.json"

// PolicyCandidate lists the paths probed, in order, for one policy kind.
type PolicyCandidate struct {
	Kind  PolicyKind
	Paths []string
}

// PolicyCandidates is the probing table for store policies.
// Both the kind order and the path order are observable.
var PolicyCandidates = []PolicyCandidate{
	{Kind: PolicyPrivacy, Paths: []string{"/pages/privacy-policy", "/privacy-policy", "/pages/privacy"}},
	{Kind: PolicyReturnRefund, Paths: []string{"/pages/return-policy", "/pages/refund-policy", "/pages/returns"}},
	{Kind: PolicyTerms, Paths: []string{"/pages/terms-of-service", "/terms", "/pages/terms"}},
}

// FAQPaths are probed in order for a structured FAQ page.
var FAQPaths = []string{"/pages/faq", "/faq", "/pages/help", "/help", "/pages/frequently-asked-questions"}

// ContactPaths are probed in order; the first reachable page is scanned
// together with the homepage.
var ContactPaths = []string{"/pages/contact", "/contact", "/pages/contact-us", "/contact-us"}

// AboutPaths are probed in order for the brand story.
var AboutPaths = []string{"/pages/about", "/pages/about-us", "/pages/our-story", "/about"}

// JoinPath appends a root-relative path to a base URL, trimming any
// trailing slash from the base first.
func JoinPath(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}
