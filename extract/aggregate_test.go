package extract_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/storelens"
	"github.com/fwojciec/storelens/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("empty outcomes produce empty collections", func(t *testing.T) {
		t.Parallel()

		b := extract.Aggregate("shop.example.com", nil, fixedNow)

		requireInvariants(t, b)
		assert.True(t, b.ExtractionSuccess)
		assert.NotNil(t, b.ProductCatalog)
		assert.NotNil(t, b.HeroProducts)
		assert.NotNil(t, b.FAQs)
		assert.NotNil(t, b.SocialHandles)
		assert.NotNil(t, b.ImportantLinks)
		assert.NotNil(t, b.ErrorsEncountered)
		assert.NotNil(t, b.ContactInfo.Emails)
		assert.NotNil(t, b.ContactInfo.PhoneNumbers)
		assert.NotNil(t, b.ContactInfo.Addresses)
		assert.Equal(t, fixedNow, b.ExtractionTimestamp)
	})

	t.Run("enforces collection invariants", func(t *testing.T) {
		t.Parallel()

		var links []storelens.ImportantLink
		for i := range 12 {
			links = append(links, storelens.ImportantLink{Title: "News", URL: "https://shop.example.com/blogs/" + strings.Repeat("n", i+1), Category: storelens.LinkBlog})
		}
		links = append([]storelens.ImportantLink{links[0]}, links...)

		outcomes := []storelens.Outcome{
			{Category: storelens.CategoryCatalog, Section: storelens.Catalog{Products: []storelens.Product{
				{Title: "Tee", IsHero: true}, {Title: ""}, {Title: "Cap"},
			}}},
			{Category: storelens.CategoryHeroProducts, Section: storelens.HeroProducts{Products: []storelens.Product{
				{Title: "A"}, {Title: "B"}, {Title: "C"}, {Title: "D"}, {Title: "E"}, {Title: "F"},
			}}},
			{Category: storelens.CategoryImportantLinks, Section: storelens.LinkSet{Links: links}},
			{Category: storelens.CategorySocialHandles, Section: storelens.SocialSet{Handles: []storelens.SocialHandle{
				{Platform: storelens.PlatformInstagram, Username: "one"},
				{Platform: storelens.PlatformInstagram, Username: "two"},
				{Platform: storelens.PlatformTikTok, Username: "three"},
			}}},
			{Category: storelens.CategoryContactInfo, Section: storelens.ContactInfo{
				Emails:       []string{"Hi@Example.com", "hi@example.com", "sales@example.com"},
				PhoneNumbers: []string{"5551234567", "(555) 123-4567"},
			}},
			{Category: storelens.CategoryFAQs, Section: storelens.FAQSet{FAQs: []storelens.FAQ{
				{Question: "Why?", Answer: strings.Repeat("a", 900)},
			}}},
		}

		b := extract.Aggregate("shop.example.com", outcomes, fixedNow)

		requireInvariants(t, b)
		require.Len(t, b.ProductCatalog, 2)
		assert.False(t, b.ProductCatalog[0].IsHero)
		assert.NotNil(t, b.ProductCatalog[0].Tags)
		assert.Equal(t, 2, b.TotalProducts)
		assert.Len(t, b.HeroProducts, storelens.MaxHeroProducts)
		assert.Len(t, b.ImportantLinks, storelens.MaxImportantLinks)
		require.Len(t, b.SocialHandles, 2)
		assert.Equal(t, "one", b.SocialHandles[0].Username)
		assert.Equal(t, []string{"hi@example.com", "sales@example.com"}, b.ContactInfo.Emails)
		assert.Equal(t, []string{"5551234567"}, b.ContactInfo.PhoneNumbers)
		assert.Len(t, b.FAQs[0].Answer, storelens.MaxFAQAnswerLength)
	})

	t.Run("tags failures and sorts them by category", func(t *testing.T) {
		t.Parallel()

		outcomes := []storelens.Outcome{
			{Category: storelens.CategoryContactInfo, Err: errors.New("dial tcp: i/o timeout")},
			{Category: storelens.CategoryPolicies, Section: storelens.PolicySet{
				Terms: &storelens.Policy{Title: "Terms", Content: strings.Repeat("t", 2500)},
				Failures: []storelens.PolicyFailure{
					{Kind: storelens.PolicyPrivacy, Err: storelens.Errorf(storelens.EUNAVAILABLE, "connection refused")},
				},
			}},
			{Category: storelens.CategoryCatalog, Err: extract.ErrTimedOut},
		}

		b := extract.Aggregate("shop.example.com", outcomes, fixedNow)

		requireInvariants(t, b)
		assert.False(t, b.ExtractionSuccess)
		assert.Equal(t, []string{
			"Product extraction failed: timed out",
			"Policies extraction failed: privacy: connection refused",
			"Contact info extraction failed: dial tcp: i/o timeout",
		}, b.ErrorsEncountered)
		require.NotNil(t, b.TermsOfService)
		assert.Len(t, b.TermsOfService.Content, storelens.MaxPolicyContentLength)
		assert.Nil(t, b.PrivacyPolicy)
	})

	t.Run("copies brand info", func(t *testing.T) {
		t.Parallel()

		outcomes := []storelens.Outcome{
			{Category: storelens.CategoryBrandInfo, Section: storelens.BrandInfo{Name: "Acme", Description: "Gear", Story: "Since 1999."}},
		}

		b := extract.Aggregate("shop.example.com", outcomes, fixedNow)

		assert.Equal(t, "Acme", b.BrandName)
		assert.Equal(t, "Gear", b.BrandDescription)
		assert.Equal(t, "Since 1999.", b.BrandStory)
	})
}
