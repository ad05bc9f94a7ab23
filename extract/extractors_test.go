package extract_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fwojciec/storelens"
	"github.com/fwojciec/storelens/extract"
	"github.com/fwojciec/storelens/goquery"
	"github.com/fwojciec/storelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteBase = "https://shop.example.com"

// pageSite serves bodies by path with status 200; paths listed in failing
// return a network error and every other path is a 404.
func pageSite(pages map[string]string, failing ...string) (*mock.Site, *[]string) {
	var requested []string
	site := &mock.Site{
		BaseURLFn: func() string { return siteBase },
		GetFn: func(ctx context.Context, path string) (*storelens.Response, error) {
			requested = append(requested, path)
			for _, f := range failing {
				if f == path {
					return nil, errors.New("connection refused")
				}
			}
			body, ok := pages[path]
			if !ok {
				return &storelens.Response{URL: siteBase + path, StatusCode: http.StatusNotFound}, nil
			}
			return &storelens.Response{URL: siteBase + path, StatusCode: http.StatusOK, Body: body}, nil
		},
	}
	return site, &requested
}

func TestCatalogExtractor(t *testing.T) {
	t.Parallel()

	t.Run("passes body and base URL to the parser", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(map[string]string{"/products.json": `{"products":[]}`})
		x := &extract.CatalogExtractor{Parser: &mock.CatalogParser{
			ParseCatalogFn: func(body, baseURL string) ([]storelens.Product, error) {
				assert.Equal(t, `{"products":[]}`, body)
				assert.Equal(t, siteBase, baseURL)
				return []storelens.Product{{Title: "Tee"}}, nil
			},
		}}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		assert.Equal(t, storelens.Catalog{Products: []storelens.Product{{Title: "Tee"}}}, section)
	})

	t.Run("fails on non-2xx status", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(nil)
		x := &extract.CatalogExtractor{Parser: &mock.CatalogParser{}}

		_, err := x.Extract(context.Background(), site)

		require.Error(t, err)
		assert.Equal(t, "HTTP 404 for https://shop.example.com/products.json", storelens.ErrorMessage(err))
	})

	t.Run("fails on parse error", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(map[string]string{"/products.json": "<html>"})
		x := &extract.CatalogExtractor{Parser: &mock.CatalogParser{
			ParseCatalogFn: func(body, baseURL string) ([]storelens.Product, error) {
				return nil, storelens.Errorf(storelens.EINVALID, "catalog payload is not a JSON object")
			},
		}}

		_, err := x.Extract(context.Background(), site)

		assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(err))
	})
}

func TestBrandInfoExtractor(t *testing.T) {
	t.Parallel()

	parser := goquery.NewParser()

	t.Run("takes story from first about page with text", func(t *testing.T) {
		t.Parallel()

		site, requested := pageSite(map[string]string{
			"":                 `<title>Acme</title>`,
			"/pages/about":     `<p></p>`,
			"/pages/about-us":  `<p>Our story</p>`,
			"/pages/our-story": `<p>Never reached</p>`,
		})
		x := &extract.BrandInfoExtractor{Parser: parser, Content: &mock.ContentExtractor{
			ExtractFn: func(html, pageURL string) (*storelens.ExtractResult, error) {
				if pageURL == siteBase+"/pages/about" {
					return &storelens.ExtractResult{}, nil
				}
				return &storelens.ExtractResult{Text: "Founded by makers."}, nil
			},
		}}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		info := section.(storelens.BrandInfo)
		assert.Equal(t, "Acme", info.Name)
		assert.Equal(t, "Founded by makers.", info.Story)
		assert.NotContains(t, *requested, "/pages/our-story")
	})

	t.Run("missing about pages are a soft miss", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(map[string]string{"": `<title>Acme</title>`}, "/pages/about")
		x := &extract.BrandInfoExtractor{Parser: parser, Content: &mock.ContentExtractor{}}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		assert.Empty(t, section.(storelens.BrandInfo).Story)
	})

	t.Run("fails when homepage is not 2xx", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(nil)
		x := &extract.BrandInfoExtractor{Parser: parser}

		_, err := x.Extract(context.Background(), site)

		assert.Equal(t, storelens.EUNAVAILABLE, storelens.ErrorCode(err))
	})
}

func TestPolicyExtractor(t *testing.T) {
	t.Parallel()

	t.Run("probes candidates in order", func(t *testing.T) {
		t.Parallel()

		site, requested := pageSite(map[string]string{
			"/privacy-policy": `<main>Private</main>`,
			"/pages/privacy":  `<main>Never reached</main>`,
			"/pages/returns":  `<p>no container</p>`,
			"/terms":          `<article><h1>Terms</h1>Be nice</article>`,
		})
		x := &extract.PolicyExtractor{Parser: goquery.NewParser()}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		set := section.(storelens.PolicySet)
		require.NotNil(t, set.Privacy)
		assert.Equal(t, "Privacy Policy", set.Privacy.Title)
		assert.Equal(t, siteBase+"/privacy-policy", set.Privacy.URL)
		assert.Nil(t, set.ReturnRefund)
		require.NotNil(t, set.Terms)
		assert.Equal(t, "Terms", set.Terms.Title)
		assert.Empty(t, set.Failures)
		assert.NotContains(t, *requested, "/pages/privacy")
	})

	t.Run("reports kinds whose candidates all fail", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(
			map[string]string{"/pages/terms": `<main>Terms</main>`},
			"/pages/return-policy", "/pages/refund-policy", "/pages/returns", "/pages/privacy",
		)
		x := &extract.PolicyExtractor{Parser: goquery.NewParser()}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		set := section.(storelens.PolicySet)
		require.Len(t, set.Failures, 1)
		assert.Equal(t, storelens.PolicyReturnRefund, set.Failures[0].Kind)
		assert.EqualError(t, set.Failures[0].Err, "connection refused")
		assert.NotNil(t, set.Terms)
	})
}

func TestFAQExtractor(t *testing.T) {
	t.Parallel()

	t.Run("uses first page with structured FAQs", func(t *testing.T) {
		t.Parallel()

		site, requested := pageSite(map[string]string{
			"/pages/faq":  `<p>Coming soon</p>`,
			"/faq":        `<div class="faq"><h3>Returns?</h3><p>Within thirty days of delivery.</p></div>`,
			"/pages/help": `<div class="faq"><h3>Never?</h3><p>This page is never read.</p></div>`,
		})
		x := &extract.FAQExtractor{Parser: goquery.NewParser()}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		faqs := section.(storelens.FAQSet).FAQs
		require.Len(t, faqs, 1)
		assert.Equal(t, "Returns?", faqs[0].Question)
		assert.NotContains(t, *requested, "/pages/help")
		assert.NotContains(t, *requested, "")
	})

	t.Run("falls back to homepage keywords", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(map[string]string{
			"": `<p>Cash on Delivery available. Easy returns. Size chart inside.</p>`,
		})
		x := &extract.FAQExtractor{Parser: goquery.NewParser()}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		faqs := section.(storelens.FAQSet).FAQs
		require.Len(t, faqs, 4)
		assert.Equal(t, "payment", faqs[0].Category)
		assert.Equal(t, "shipping", faqs[1].Category)
		assert.Equal(t, "returns", faqs[2].Category)
		assert.Equal(t, "sizing", faqs[3].Category)
	})

	t.Run("unreachable homepage yields no fallback", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(nil, "")
		x := &extract.FAQExtractor{Parser: goquery.NewParser()}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		assert.Empty(t, section.(storelens.FAQSet).FAQs)
	})
}

func TestContactInfoExtractor(t *testing.T) {
	t.Parallel()

	t.Run("scans homepage and first reachable contact page", func(t *testing.T) {
		t.Parallel()

		site, requested := pageSite(map[string]string{
			"":                  `<p>support@example.com</p>`,
			"/contact":          `<p>Call +1 (212) 555-0100 or mail support@example.com</p>`,
			"/pages/contact-us": `<p>never@example.com</p>`,
		}, "/pages/contact")
		x := &extract.ContactInfoExtractor{Parser: goquery.NewParser()}

		section, err := x.Extract(context.Background(), site)

		require.NoError(t, err)
		info := section.(storelens.ContactInfo)
		assert.Equal(t, []string{"support@example.com", "support@example.com"}, info.Emails)
		assert.Equal(t, []string{"2125550100"}, info.PhoneNumbers)
		assert.NotContains(t, *requested, "/pages/contact-us")
	})

	t.Run("fails when homepage is unreachable", func(t *testing.T) {
		t.Parallel()

		site, _ := pageSite(nil, "")
		x := &extract.ContactInfoExtractor{Parser: goquery.NewParser()}

		_, err := x.Extract(context.Background(), site)

		assert.EqualError(t, err, "connection refused")
	})
}

func TestSocialHandleExtractor(t *testing.T) {
	t.Parallel()

	site, _ := pageSite(map[string]string{
		"": `<a href="https://instagram.com/teststore">IG</a><a href="https://instagram.com/other">IG2</a>`,
	})

	section, err := (&extract.SocialHandleExtractor{}).Extract(context.Background(), site)

	require.NoError(t, err)
	handles := section.(storelens.SocialSet).Handles
	require.Len(t, handles, 1)
	assert.Equal(t, storelens.PlatformInstagram, handles[0].Platform)
	assert.Equal(t, "teststore", handles[0].Username)
}

func TestExtractors_Order(t *testing.T) {
	t.Parallel()

	xs := extract.Extractors(goquery.NewParser(), &mock.CatalogParser{}, nil)

	require.Len(t, xs, len(storelens.Categories()))
	for i, c := range storelens.Categories() {
		assert.Equal(t, c, xs[i].Category())
	}
}
