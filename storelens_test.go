package storelens_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/storelens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := storelens.Errorf(storelens.ENOTFOUND, "insights for %q not found", "shop.example.com")

	assert.Equal(t, storelens.ENOTFOUND, storelens.ErrorCode(err))
	assert.Equal(t, `insights for "shop.example.com" not found`, storelens.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, storelens.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, storelens.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving: %w", storelens.Errorf(storelens.EINVALID, "domain required"))

	assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(err))
	assert.Equal(t, "domain required", storelens.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, storelens.EINTERNAL, storelens.ErrorCode(err))
	assert.Equal(t, "boom", storelens.ErrorMessage(err))
}

func TestDomainOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "plain host", url: "https://shop.example.com", want: "shop.example.com"},
		{name: "lower-cases host", url: "https://Shop.Example.COM/", want: "shop.example.com"},
		{name: "keeps port", url: "http://127.0.0.1:8080", want: "127.0.0.1:8080"},
		{name: "ignores path", url: "https://shop.example.com/collections/all", want: "shop.example.com"},
		{name: "missing scheme", url: "shop.example.com", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := storelens.DomainOf(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBrandInsights_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *storelens.BrandInsights {
		return &storelens.BrandInsights{
			Domain:            "shop.example.com",
			ProductCatalog:    []storelens.Product{{Title: "Tee"}},
			TotalProducts:     1,
			ExtractionSuccess: true,
		}
	}

	t.Run("accepts consistent aggregate", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, valid().Validate())
	})

	t.Run("requires domain", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.Domain = ""

		assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(b.Validate()))
	})

	t.Run("rejects total product mismatch", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.TotalProducts = 3

		assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(b.Validate()))
	})

	t.Run("rejects success flag with errors", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.ErrorsEncountered = []string{"FAQs extraction failed: boom"}

		assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(b.Validate()))
	})

	t.Run("rejects untitled product", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.ProductCatalog[0].Title = ""

		assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(b.Validate()))
	})
}

func TestCategory_FailureMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Product extraction failed: HTTP 404", storelens.CategoryCatalog.FailureMessage("HTTP 404"))
	assert.Equal(t, "Contact info extraction failed: timed out", storelens.CategoryContactInfo.FailureMessage("timed out"))
}

func TestCategories_Order(t *testing.T) {
	t.Parallel()

	cats := storelens.Categories()

	require.Len(t, cats, 8)
	assert.Equal(t, storelens.CategoryCatalog, cats[0])
	assert.Equal(t, storelens.CategoryContactInfo, cats[7])
}

func TestPolicyKind_DefaultTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Privacy Policy", storelens.PolicyPrivacy.DefaultTitle())
	assert.Equal(t, "Return Refund Policy", storelens.PolicyReturnRefund.DefaultTitle())
	assert.Equal(t, "Terms Policy", storelens.PolicyTerms.DefaultTitle())
}

func TestResponse_OK(t *testing.T) {
	t.Parallel()

	var nilResp *storelens.Response

	assert.True(t, (&storelens.Response{StatusCode: 200}).OK())
	assert.True(t, (&storelens.Response{StatusCode: 204}).OK())
	assert.False(t, (&storelens.Response{StatusCode: 301}).OK())
	assert.False(t, (&storelens.Response{StatusCode: 404}).OK())
	assert.False(t, nilResp.OK())
}

func TestJoinPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://shop.example.com/products.json", storelens.JoinPath("https://shop.example.com/", storelens.CatalogPath))
	assert.Equal(t, "https://shop.example.com/faq", storelens.JoinPath("https://shop.example.com", "/faq"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", storelens.Truncate("hello", 10))
	assert.Equal(t, "hel", storelens.Truncate("hello", 3))
	assert.Equal(t, "żół", storelens.Truncate("żółw", 3))
	assert.Empty(t, storelens.Truncate("hello", 0))
}
