package goquery

import (
	"net/url"
	"strings"
)

// resolveURL resolves href against base and strips the fragment.
// Returns empty string if href cannot be parsed or resolves to a non-HTTP
// scheme.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// productHandle returns the path segment following /products/ in a product
// URL, or empty string if there is none.
func productHandle(productURL string) string {
	u, err := url.Parse(productURL)
	if err != nil {
		return ""
	}
	_, rest, ok := strings.Cut(u.Path, "/products/")
	if !ok {
		return ""
	}
	handle, _, _ := strings.Cut(rest, "/")
	return handle
}
