package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storelens"
	"golang.org/x/net/html"
)

// Ensure Parser implements storelens.PageParser at compile time.
var _ storelens.PageParser = (*Parser)(nil)

// Selectors used to locate page regions.
const (
	heroProductSelector = `a[href*="/products/"]`

	faqContainerSelector = `div[class*="faq"], div[class*="accordion"], div[class*="question"], ` +
		`section[class*="faq"], section[class*="accordion"], section[class*="question"]`
	faqQuestionSelector = "h3, h4, h5, dt, strong"
)

// policyContainerSelectors are tried in order; the first that matches
// anything supplies the policy content.
var policyContainerSelectors = []string{
	`div[class*="policy"], div[class*="content"], section[class*="policy"], section[class*="content"]`,
	"main",
	"article",
	"div.page-content",
	"#content",
}

// Parser extracts storefront data from HTML using CSS selectors.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseHeroProducts returns products linked from the page. The first
// MaxHeroProducts product links are considered in document order; links
// without any title are then dropped.
func (p *Parser) ParseHeroProducts(rawHTML, pageURL string) ([]storelens.Product, error) {
	base, doc, err := parse(rawHTML, pageURL)
	if err != nil {
		return nil, err
	}

	anchors := doc.Find(heroProductSelector)
	if anchors.Length() > storelens.MaxHeroProducts {
		anchors = anchors.Slice(0, storelens.MaxHeroProducts)
	}

	var products []storelens.Product
	anchors.Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		title := CleanText(sel.Text())
		if title == "" {
			title = CleanText(sel.AttrOr("title", ""))
		}
		if title == "" {
			return
		}

		products = append(products, storelens.Product{
			Title:        title,
			Handle:       productHandle(resolved),
			ProductURL:   resolved,
			Availability: true,
			IsHero:       true,
		})
	})
	return products, nil
}

// ParseBrandInfo returns the brand name from the page title, the first
// heading or the URL authority, and the meta description.
func (p *Parser) ParseBrandInfo(rawHTML, pageURL string) (*storelens.BrandInfo, error) {
	base, doc, err := parse(rawHTML, pageURL)
	if err != nil {
		return nil, err
	}

	name := CleanText(doc.Find("title").First().Text())
	if name == "" {
		name = CleanText(doc.Find("h1").First().Text())
	}
	if name == "" {
		name = strings.ToLower(base.Host)
	}

	return &storelens.BrandInfo{
		Name:        name,
		Description: CleanText(doc.Find(`meta[name="description"]`).First().AttrOr("content", "")),
	}, nil
}

// ParsePolicy returns the policy in the page's main content container,
// or nil if none of the known containers is present.
func (p *Parser) ParsePolicy(rawHTML, pageURL string, kind storelens.PolicyKind) (*storelens.Policy, error) {
	_, doc, err := parse(rawHTML, pageURL)
	if err != nil {
		return nil, err
	}

	var container *goquery.Selection
	for _, selector := range policyContainerSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			container = sel
			break
		}
	}
	if container == nil {
		return nil, nil
	}

	title := CleanText(doc.Find("h1").First().Text())
	if title == "" {
		title = kind.DefaultTitle()
	}

	return &storelens.Policy{
		Title:   title,
		Content: storelens.Truncate(selectionText(container), storelens.MaxPolicyContentLength),
		URL:     pageURL,
	}, nil
}

// ParseFAQs returns question/answer pairs from FAQ-like containers. When no
// container carries an FAQ-ish class every div and section is searched.
// Questions are deduplicated across containers.
func (p *Parser) ParseFAQs(rawHTML string) ([]storelens.FAQ, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, storelens.Errorf(storelens.EINVALID, "failed to parse HTML: %v", err)
	}

	containers := doc.Find(faqContainerSelector)
	if containers.Length() == 0 {
		containers = doc.Find("div, section")
	}

	var faqs []storelens.FAQ
	seen := make(map[string]bool)
	containers.Each(func(_ int, container *goquery.Selection) {
		questions := container.Find(faqQuestionSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(s.Text(), "?")
		})

		questions.EachWithBreak(func(i int, q *goquery.Selection) bool {
			if i >= storelens.MaxFAQsPerContainer {
				return false
			}

			question := CleanText(q.Text())
			if question == "" || seen[question] {
				return true
			}

			answerNode := answerFor(q)
			if answerNode == nil {
				return true
			}
			answer := visibleText(answerNode)
			if utf8.RuneCountInString(answer) <= storelens.MinFAQAnswerLength {
				return true
			}

			seen[question] = true
			faqs = append(faqs, storelens.FAQ{
				Question: question,
				Answer:   storelens.Truncate(answer, storelens.MaxFAQAnswerLength),
			})
			return true
		})
	})
	return faqs, nil
}

// answerFor returns the element holding the answer to question q: its next
// p, div or dd sibling, else the next such element in the document.
func answerFor(q *goquery.Selection) *html.Node {
	if sib := q.NextAllFiltered("p, div, dd").First(); sib.Length() > 0 {
		return sib.Get(0)
	}
	return nextElement(q.Get(0), "p", "div", "dd")
}

// ParseImportantLinks returns navigation links whose text matches one of
// the link keyword groups, deduplicated by absolute URL in document order.
func (p *Parser) ParseImportantLinks(rawHTML, pageURL string) ([]storelens.ImportantLink, error) {
	base, doc, err := parse(rawHTML, pageURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var links []storelens.ImportantLink
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if storelens.IsPseudoLink(href) {
			return true
		}

		text := CleanText(sel.Text())
		category, ok := storelens.ClassifyLinkText(text)
		if !ok {
			return true
		}

		resolved := resolveURL(base, strings.TrimSpace(href))
		if resolved == "" || seen[resolved] {
			return true
		}
		seen[resolved] = true

		links = append(links, storelens.ImportantLink{
			Title:    text,
			URL:      resolved,
			Category: category,
		})
		return len(links) < storelens.MaxImportantLinks
	})
	return links, nil
}

// ParseText returns the page's visible text with whitespace collapsed.
func (p *Parser) ParseText(rawHTML string) (string, error) {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", storelens.Errorf(storelens.EINVALID, "failed to parse HTML: %v", err)
	}
	return visibleText(node), nil
}

func parse(rawHTML, pageURL string) (*url.URL, *goquery.Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, storelens.Errorf(storelens.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, nil, storelens.Errorf(storelens.EINVALID, "failed to parse HTML: %v", err)
	}
	return base, doc, nil
}

func selectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return visibleText(sel.Get(0))
}
