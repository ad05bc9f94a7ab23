package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanText normalises a fragment that may contain markup: entities are
// decoded, tags are stripped and runs of whitespace collapse to one space.
// Script and style contents are dropped.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	if !strings.ContainsRune(s, '<') {
		return collapseSpace(s)
	}

	var parts []string
	skip := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way keep what was read.
			return collapseSpace(strings.Join(parts, " "))
		case html.StartTagToken:
			if isInvisible(z) {
				skip++
			}
		case html.EndTagToken:
			if skip > 0 && isInvisible(z) {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				parts = append(parts, string(z.Text()))
			}
		}
	}
}

func isInvisible(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style", "noscript":
		return true
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// visibleText joins the text nodes under n with single spaces, skipping
// script, style and noscript subtrees.
func visibleText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			parts = append(parts, n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapseSpace(strings.Join(parts, " "))
}

// nextElement returns the first element after n in document order whose tag
// is one of tags. Descendants of n come first, matching a forward scan of
// the parsed document.
func nextElement(n *html.Node, tags ...string) *html.Node {
	for cur := following(n); cur != nil; cur = following(cur) {
		if cur.Type != html.ElementNode {
			continue
		}
		for _, t := range tags {
			if cur.Data == t {
				return cur
			}
		}
	}
	return nil
}

func following(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}
