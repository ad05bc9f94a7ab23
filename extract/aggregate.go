package extract

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/storelens"
)

// Aggregate folds category outcomes into a BrandInsights for domain.
// Failures are recorded in category order regardless of the order of
// outcomes, and every collection invariant is enforced here so that
// extractors need not be trusted. Collections are never nil.
func Aggregate(domain string, outcomes []storelens.Outcome, ts time.Time) *storelens.BrandInsights {
	b := &storelens.BrandInsights{
		Domain:              domain,
		ProductCatalog:      []storelens.Product{},
		HeroProducts:        []storelens.Product{},
		FAQs:                []storelens.FAQ{},
		SocialHandles:       []storelens.SocialHandle{},
		ImportantLinks:      []storelens.ImportantLink{},
		ErrorsEncountered:   []string{},
		ExtractionTimestamp: ts,
		ContactInfo: storelens.ContactInfo{
			Emails:       []string{},
			PhoneNumbers: []string{},
			Addresses:    []string{},
		},
	}

	ordered := slices.Clone(outcomes)
	slices.SortStableFunc(ordered, func(a, b storelens.Outcome) int {
		return categoryRank(a.Category) - categoryRank(b.Category)
	})

	for _, o := range ordered {
		if o.Err != nil {
			b.ErrorsEncountered = append(b.ErrorsEncountered, o.Category.FailureMessage(failureReason(o.Err)))
			continue
		}

		switch s := o.Section.(type) {
		case storelens.Catalog:
			b.ProductCatalog = catalogProducts(s.Products)
		case storelens.HeroProducts:
			b.HeroProducts = heroProducts(s.Products)
		case storelens.BrandInfo:
			b.BrandName = s.Name
			b.BrandDescription = s.Description
			b.BrandStory = storelens.Truncate(s.Story, storelens.MaxBrandStoryLength)
		case storelens.PolicySet:
			b.PrivacyPolicy = capPolicy(s.Privacy)
			b.ReturnRefundPolicy = capPolicy(s.ReturnRefund)
			b.TermsOfService = capPolicy(s.Terms)
			for _, f := range s.Failures {
				b.ErrorsEncountered = append(b.ErrorsEncountered,
					storelens.CategoryPolicies.FailureMessage(string(f.Kind)+": "+failureReason(f.Err)))
			}
		case storelens.FAQSet:
			b.FAQs = faqs(s.FAQs)
		case storelens.LinkSet:
			b.ImportantLinks = importantLinks(s.Links)
		case storelens.SocialSet:
			b.SocialHandles = socialHandles(s.Handles)
		case storelens.ContactInfo:
			b.ContactInfo.Emails = uniqueStrings(s.Emails, strings.ToLower)
			b.ContactInfo.PhoneNumbers = uniqueStrings(s.PhoneNumbers, storelens.DigitsOnly)
		}
	}

	b.TotalProducts = len(b.ProductCatalog)
	b.ExtractionSuccess = len(b.ErrorsEncountered) == 0
	return b
}

func categoryRank(c storelens.Category) int {
	if i := slices.Index(storelens.Categories(), c); i >= 0 {
		return i
	}
	return len(storelens.Categories())
}

func failureReason(err error) string {
	if err == nil {
		return "unknown error"
	}
	if errors.Is(err, ErrTimedOut) {
		return ErrTimedOut.Error()
	}
	return storelens.ErrorMessage(err)
}

func catalogProducts(in []storelens.Product) []storelens.Product {
	out := make([]storelens.Product, 0, len(in))
	for _, p := range in {
		if p.Title == "" {
			continue
		}
		p.IsHero = false
		if p.Tags == nil {
			p.Tags = []string{}
		}
		out = append(out, p)
	}
	return out
}

func heroProducts(in []storelens.Product) []storelens.Product {
	out := make([]storelens.Product, 0, min(len(in), storelens.MaxHeroProducts))
	for _, p := range in {
		if len(out) == storelens.MaxHeroProducts {
			break
		}
		if p.Title == "" {
			continue
		}
		p.IsHero = true
		if p.Tags == nil {
			p.Tags = []string{}
		}
		out = append(out, p)
	}
	return out
}

func capPolicy(p *storelens.Policy) *storelens.Policy {
	if p == nil {
		return nil
	}
	c := *p
	c.Content = storelens.Truncate(c.Content, storelens.MaxPolicyContentLength)
	return &c
}

func faqs(in []storelens.FAQ) []storelens.FAQ {
	out := make([]storelens.FAQ, 0, len(in))
	for _, f := range in {
		f.Answer = storelens.Truncate(f.Answer, storelens.MaxFAQAnswerLength)
		out = append(out, f)
	}
	return out
}

func importantLinks(in []storelens.ImportantLink) []storelens.ImportantLink {
	out := make([]storelens.ImportantLink, 0, min(len(in), storelens.MaxImportantLinks))
	seen := make(map[string]bool)
	for _, l := range in {
		if len(out) == storelens.MaxImportantLinks {
			break
		}
		if seen[l.URL] {
			continue
		}
		seen[l.URL] = true
		out = append(out, l)
	}
	return out
}

func socialHandles(in []storelens.SocialHandle) []storelens.SocialHandle {
	out := make([]storelens.SocialHandle, 0, len(in))
	seen := make(map[storelens.Platform]bool)
	for _, h := range in {
		if seen[h.Platform] {
			continue
		}
		seen[h.Platform] = true
		out = append(out, h)
	}
	return out
}

// uniqueStrings normalises each value and drops empties and duplicates,
// keeping first-seen order.
func uniqueStrings(in []string, normalise func(string) string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool)
	for _, v := range in {
		v = normalise(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
