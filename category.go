package storelens

import "context"

// Category names one of the independent extraction concerns.
// The value is used verbatim as the tag of failure strings.
type Category string

// Extraction categories, in aggregation order.
const (
	CategoryCatalog        Category = "Product"
	CategoryHeroProducts   Category = "Hero products"
	CategoryBrandInfo      Category = "Brand info"
	CategoryPolicies       Category = "Policies"
	CategoryFAQs           Category = "FAQs"
	CategoryImportantLinks Category = "Important links"
	CategorySocialHandles  Category = "Social handles"
	CategoryContactInfo    Category = "Contact info"
)

// Categories returns all categories in aggregation order.
func Categories() []Category {
	return []Category{
		CategoryCatalog,
		CategoryHeroProducts,
		CategoryBrandInfo,
		CategoryPolicies,
		CategoryFAQs,
		CategoryImportantLinks,
		CategorySocialHandles,
		CategoryContactInfo,
	}
}

// FailureMessage formats the tagged failure string recorded in
// BrandInsights.ErrorsEncountered.
func (c Category) FailureMessage(reason string) string {
	return string(c) + " extraction failed: " + reason
}

// Section is one category's contribution to a BrandInsights aggregate.
// The set of implementations is closed; aggregators switch over it.
type Section interface {
	Category() Category
	section()
}

// Catalog is the result of the catalog category.
type Catalog struct {
	Products []Product
}

// HeroProducts is the result of the hero products category.
type HeroProducts struct {
	Products []Product
}

// BrandInfo is the result of the brand info category.
type BrandInfo struct {
	Name        string
	Description string
	Story       string
}

// PolicySet is the result of the policies category. A nil policy is a
// soft miss; Failures lists kinds for which every candidate page failed
// at the network level.
type PolicySet struct {
	Privacy      *Policy
	ReturnRefund *Policy
	Terms        *Policy
	Failures     []PolicyFailure
}

// Set stores p as the policy of the given kind.
func (s *PolicySet) Set(kind PolicyKind, p *Policy) {
	switch kind {
	case PolicyPrivacy:
		s.Privacy = p
	case PolicyReturnRefund:
		s.ReturnRefund = p
	case PolicyTerms:
		s.Terms = p
	}
}

// Get returns the policy of the given kind, or nil.
func (s *PolicySet) Get(kind PolicyKind) *Policy {
	switch kind {
	case PolicyPrivacy:
		return s.Privacy
	case PolicyReturnRefund:
		return s.ReturnRefund
	case PolicyTerms:
		return s.Terms
	}
	return nil
}

// PolicyFailure records a policy kind that could not be fetched at all.
type PolicyFailure struct {
	Kind PolicyKind
	Err  error
}

// FAQSet is the result of the FAQ category.
type FAQSet struct {
	FAQs []FAQ
}

// LinkSet is the result of the important links category.
type LinkSet struct {
	Links []ImportantLink
}

// SocialSet is the result of the social handles category.
type SocialSet struct {
	Handles []SocialHandle
}

func (Catalog) Category() Category      { return CategoryCatalog }
func (HeroProducts) Category() Category { return CategoryHeroProducts }
func (BrandInfo) Category() Category    { return CategoryBrandInfo }
func (PolicySet) Category() Category    { return CategoryPolicies }
func (FAQSet) Category() Category       { return CategoryFAQs }
func (LinkSet) Category() Category      { return CategoryImportantLinks }
func (SocialSet) Category() Category    { return CategorySocialHandles }
func (ContactInfo) Category() Category  { return CategoryContactInfo }

func (Catalog) section()      {}
func (HeroProducts) section() {}
func (BrandInfo) section()    {}
func (PolicySet) section()    {}
func (FAQSet) section()       {}
func (LinkSet) section()      {}
func (SocialSet) section()    {}
func (ContactInfo) section()  {}

// Outcome is the tagged result of running one category: either a Section
// or the error that stopped the category.
type Outcome struct {
	Category Category
	Section  Section
	Err      error
}

// SectionExtractor produces one category's Section for a storefront.
type SectionExtractor interface {
	Category() Category
	Extract(ctx context.Context, site Site) (Section, error)
}

// Site gives category extractors access to a storefront's pages.
// Implementations memoise fetches for the duration of one extraction.
type Site interface {
	// BaseURL returns the storefront base URL without a trailing slash.
	BaseURL() string

	// Get fetches a path relative to the base URL ("" is the homepage).
	Get(ctx context.Context, path string) (*Response, error)
}
