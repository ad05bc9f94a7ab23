package storelens

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// BrandInsights is the aggregate produced for one storefront.
// It is created fresh for every extraction and keyed by Domain in storage.
type BrandInsights struct {
	ID               string `json:"id,omitempty"`
	Domain           string `json:"domain"`
	BrandName        string `json:"brandName,omitempty"`
	BrandDescription string `json:"brandDescription,omitempty"`
	BrandStory       string `json:"brandStory,omitempty"`

	ProductCatalog []Product `json:"productCatalog"`
	HeroProducts   []Product `json:"heroProducts"`
	TotalProducts  int       `json:"totalProducts"`

	PrivacyPolicy      *Policy `json:"privacyPolicy,omitempty"`
	ReturnRefundPolicy *Policy `json:"returnRefundPolicy,omitempty"`
	TermsOfService     *Policy `json:"termsOfService,omitempty"`

	FAQs           []FAQ           `json:"faqs"`
	SocialHandles  []SocialHandle  `json:"socialHandles"`
	ContactInfo    ContactInfo     `json:"contactInfo"`
	ImportantLinks []ImportantLink `json:"importantLinks"`

	ErrorsEncountered   []string  `json:"errorsEncountered"`
	ExtractionSuccess   bool      `json:"extractionSuccess"`
	ExtractionTimestamp time.Time `json:"extractionTimestamp"`

	// Fingerprint is a content hash set by storage; it ignores timestamps
	// so unchanged storefronts hash identically across runs.
	Fingerprint string    `json:"fingerprint,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Validate returns an error if the aggregate breaks one of its invariants.
func (b *BrandInsights) Validate() error {
	if b.Domain == "" {
		return Errorf(EINVALID, "brand insights domain required")
	}
	if b.TotalProducts != len(b.ProductCatalog) {
		return Errorf(EINVALID, "total products %d does not match catalog size %d", b.TotalProducts, len(b.ProductCatalog))
	}
	if b.ExtractionSuccess != (len(b.ErrorsEncountered) == 0) {
		return Errorf(EINVALID, "extraction success flag disagrees with %d recorded errors", len(b.ErrorsEncountered))
	}
	for i := range b.ProductCatalog {
		if b.ProductCatalog[i].Title == "" {
			return Errorf(EINVALID, "product %d title required", i)
		}
	}
	return nil
}

// Product is a catalog or hero product.
type Product struct {
	ExternalID     string   `json:"externalId,omitempty"`
	Title          string   `json:"title"`
	Handle         string   `json:"handle,omitempty"`
	Description    string   `json:"description,omitempty"`
	Price          string   `json:"price,omitempty"`
	CompareAtPrice string   `json:"compareAtPrice,omitempty"`
	Availability   bool     `json:"availability"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	ProductURL     string   `json:"productUrl,omitempty"`
	Vendor         string   `json:"vendor,omitempty"`
	ProductType    string   `json:"productType,omitempty"`
	Tags           []string `json:"tags"`
	IsHero         bool     `json:"isHero"`
}

// PolicyKind identifies one of the store policies.
type PolicyKind string

// Supported policy kinds.
const (
	PolicyPrivacy      PolicyKind = "privacy"
	PolicyReturnRefund PolicyKind = "return_refund"
	PolicyTerms        PolicyKind = "terms_of_service"
)

// DefaultTitle is the title used when a policy page has no level-1 heading.
func (k PolicyKind) DefaultTitle() string {
	switch k {
	case PolicyPrivacy:
		return "Privacy Policy"
	case PolicyReturnRefund:
		return "Return Refund Policy"
	case PolicyTerms:
		return "Terms Policy"
	}
	return "Policy"
}

// Policy is a store policy page.
type Policy struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

// SocialHandle is a brand's account on a social platform.
type SocialHandle struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
	Username string   `json:"username,omitempty"`
}

// ContactInfo holds contact details found on the storefront.
// Emails are lower-cased; phone numbers are digit strings.
type ContactInfo struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phoneNumbers"`

	// Addresses is reserved and currently always empty.
	Addresses []string `json:"addresses"`
}

// ImportantLink is a categorised navigation link.
type ImportantLink struct {
	Title    string       `json:"title"`
	URL      string       `json:"url"`
	Category LinkCategory `json:"category"`
}

// InsightsExtractor builds a BrandInsights aggregate for a storefront.
type InsightsExtractor interface {
	// ExtractInsights fetches and analyses the storefront at baseURL.
	// Returns EUNAVAILABLE without an aggregate when the base URL is not
	// reachable. Category failures are reported inside the aggregate.
	ExtractInsights(ctx context.Context, baseURL string) (*BrandInsights, error)
}

// InsightsService represents a service for persisting brand insights.
type InsightsService interface {
	// SaveInsights upserts the aggregate by domain, replacing all nested
	// collections of a previously stored aggregate for the same domain.
	SaveInsights(ctx context.Context, insights *BrandInsights) error

	// FindInsightsByDomain retrieves an aggregate with all nested collections.
	// Returns ENOTFOUND if no aggregate is stored for the domain.
	FindInsightsByDomain(ctx context.Context, domain string) (*BrandInsights, error)

	// FindInsights retrieves aggregates matching the filter. Nested
	// collections are not loaded.
	FindInsights(ctx context.Context, filter InsightsFilter) ([]*BrandInsights, error)

	// DeleteInsights removes the aggregate and all nested collections.
	// Returns ENOTFOUND if no aggregate is stored for the domain.
	DeleteInsights(ctx context.Context, domain string) error
}

// InsightsFilter represents a filter for FindInsights.
type InsightsFilter struct {
	Domain            *string `json:"domain"`
	ExtractionSuccess *bool   `json:"extractionSuccess"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DomainOf returns the authority (host[:port]) of a scheme-qualified URL.
func DomainOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "URL %q must include scheme and host", rawURL)
	}
	return strings.ToLower(u.Host), nil
}
